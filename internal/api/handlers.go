package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"countries/internal/faults"
	"countries/internal/rpc"
)

// Sizer reports how many records are being served
type Sizer interface {
	Len() int
}

type Handler struct {
	router   *rpc.Router
	store    Sizer
	contract *Contract
	basePath string
	logger   *log.Logger
}

func NewHandler(router *rpc.Router, store Sizer, basePath string, logger *log.Logger) (*Handler, error) {
	contract, err := NewContract(router.Operations())
	if err != nil {
		return nil, err
	}
	return &Handler{
		router:   router,
		store:    store,
		contract: contract,
		basePath: basePath,
		logger:   logger,
	}, nil
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	ws := e.Group(h.basePath)
	ws.POST("", h.SOAP)
	ws.GET("/countries.wsdl", h.WSDL)
	ws.GET("/countries.xsd", h.XSD)

	api := e.Group("/api")
	api.POST("/rpc", h.RPC)

	e.GET("/health", h.Health)
}

// --- HANDLERS ---

// SOAP dispatches a SOAP 1.1 message. Every fault is sent with status 500.
func (h *Handler) SOAP(c echo.Context) error {
	key, payload, err := rpc.ReadEnvelope(c.Request().Body)
	if err != nil {
		return h.soapFault(c, key, err)
	}

	resp, err := h.router.Dispatch(c.Request().Context(), key, payload)
	if err != nil {
		return h.soapFault(c, key, err)
	}
	return writeEnvelope(c, http.StatusOK, resp)
}

func (h *Handler) soapFault(c echo.Context, key rpc.OperationKey, err error) error {
	h.logFault(c, key, err)
	return writeEnvelope(c, http.StatusInternalServerError, rpc.FaultFor(err))
}

// SOAPErrorHandler sends errors raised on the SOAP route, such as an oversized body,
// as SOAP faults and hands every other error to fallback.
func (h *Handler) SOAPErrorHandler(fallback echo.HTTPErrorHandler) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		req := c.Request()
		if c.Response().Committed || req.Method != http.MethodPost || req.URL.Path != h.basePath {
			fallback(err, c)
			return
		}

		fault := faults.Wrap(faults.Internal, "internal error", err)
		var he *echo.HTTPError
		if errors.As(err, &he) && he.Code < http.StatusInternalServerError {
			fault = faults.Wrap(faults.MalformedRequest, fmt.Sprint(he.Message), err)
		}

		if werr := h.soapFault(c, rpc.OperationKey{}, fault); werr != nil {
			h.logger.Error(werr)
		}
	}
}

func writeEnvelope(c echo.Context, status int, body any) error {
	var buf bytes.Buffer
	if err := rpc.WriteEnvelope(&buf, body); err != nil {
		return err
	}
	return c.Blob(status, rpc.ContentType, buf.Bytes())
}

// RPC dispatches a JSON envelope through the same routing table
func (h *Handler) RPC(c echo.Context) error {
	key, payload, err := rpc.ReadRequest(c.Request().Body)
	if err != nil {
		h.logFault(c, key, err)
		return c.JSON(StatusFor(faults.CodeOf(err)), rpc.FaultResponse(err))
	}

	resp, err := h.router.Dispatch(c.Request().Context(), key, payload)
	if err != nil {
		h.logFault(c, key, err)
		return c.JSON(StatusFor(faults.CodeOf(err)), rpc.FaultResponse(err))
	}
	return c.JSON(http.StatusOK, rpc.Response{Payload: resp})
}

// StatusFor maps fault codes to HTTP status codes for the JSON transport
func StatusFor(code faults.Code) int {
	switch code {
	case faults.InvalidArgument, faults.MalformedRequest:
		return http.StatusBadRequest // 400
	case faults.UnknownOperation:
		return http.StatusNotFound // 404
	default:
		return http.StatusInternalServerError // 500
	}
}

// WSDL serves the service definition addressed to the host the client used
func (h *Handler) WSDL(c echo.Context) error {
	doc, err := h.contract.WSDL(c.Scheme() + "://" + c.Request().Host + h.basePath)
	if err != nil {
		return err
	}
	return writeDocument(c, doc)
}

func (h *Handler) XSD(c echo.Context) error {
	return writeDocument(c, h.contract.XSD())
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":     "ok",
		"countries":  h.store.Len(),
		"operations": h.router.Operations(),
	})
}

func (h *Handler) logFault(c echo.Context, key rpc.OperationKey, err error) {
	h.logger.Warnj(log.JSON{
		"event":      "fault",
		"operation":  key.String(),
		"code":       faults.CodeOf(err),
		"error":      err.Error(),
		"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
	})
}
