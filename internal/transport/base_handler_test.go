package transport_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/frahmantamala/employee-directory/internal"
	"github.com/frahmantamala/employee-directory/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

var _ = Describe("BaseHandler", func() {
	var h *transport.BaseHandler

	BeforeEach(func() {
		h = transport.NewBaseHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	Describe("PathID", func() {
		It("parses positive ids", func() {
			r := withURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", "42")
			id, err := h.PathID(r, "id")
			Expect(err).NotTo(HaveOccurred())
			Expect(id).To(Equal(int64(42)))
		})

		DescribeTable("rejects bad ids",
			func(raw string) {
				r := withURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", raw)
				_, err := h.PathID(r, "id")
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.StatusCode).To(Equal(http.StatusBadRequest))
			},
			Entry("non numeric", "abc"),
			Entry("zero", "0"),
			Entry("negative", "-3"),
			Entry("empty", ""),
		)
	})

	It("falls back on missing or malformed query ints", func() {
		r := httptest.NewRequest(http.MethodGet, "/?page=3&page_size=x", nil)
		Expect(h.QueryInt(r, "page", 1)).To(Equal(3))
		Expect(h.QueryInt(r, "page_size", 10)).To(Equal(10))
		Expect(h.QueryInt(r, "limit", 4)).To(Equal(4))
	})

	Describe("DecodeJSON", func() {
		type payload struct {
			Name string `json:"name"`
		}

		It("decodes known fields", func() {
			var p payload
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"desk"}`))
			Expect(h.DecodeJSON(r, &p)).To(Succeed())
			Expect(p.Name).To(Equal("desk"))
		})

		It("rejects unknown fields and empty bodies", func() {
			var p payload
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"nmae":"desk"}`))
			Expect(h.DecodeJSON(r, &p)).To(MatchError(internal.NewValidationError("", internal.ErrCodeInvalidRequest)))

			r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
			Expect(h.DecodeJSON(r, &p)).To(MatchError(ContainSubstring("empty")))
		})
	})

	Describe("HandleServiceError", func() {
		decode := func(rec *httptest.ResponseRecorder) map[string]interface{} {
			var body struct {
				Error map[string]interface{} `json:"error"`
			}
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			return body.Error
		}

		It("writes the status of an AppError", func() {
			rec := httptest.NewRecorder()
			h.HandleServiceError(rec, internal.ErrWorkstationNotFound)
			Expect(rec.Code).To(Equal(http.StatusNotFound))
			Expect(decode(rec)["code"]).To(Equal("WORKSTATION_NOT_FOUND"))
		})

		It("hides unknown errors behind a 500", func() {
			rec := httptest.NewRecorder()
			h.HandleServiceError(rec, errors.New("connection reset"))
			Expect(rec.Code).To(Equal(http.StatusInternalServerError))
			body := decode(rec)
			Expect(body["code"]).To(Equal("INTERNAL_ERROR"))
			Expect(body["message"]).To(Equal("Internal server error"))
		})
	})
})
