package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/navid-fn/feeboard/internal/feequery"
	"github.com/navid-fn/feeboard/internal/service"
)

type FeeHandler struct {
	feeService *service.FeesService
	logger     logrus.FieldLogger
	upgrader   websocket.Upgrader
}

func NewFeeHandler(service *service.FeesService, logger logrus.FieldLogger) *FeeHandler {
	return &FeeHandler{
		feeService: service,
		logger:     logger,
		upgrader: websocket.Upgrader{
			HandshakeTimeout: HandshakeTimeout,
			ReadBufferSize:   1024,
			WriteBufferSize:  4096,
		},
	}
}

// GetFees answers /fees?q=&notional=&sort=&dir=.
func (h *FeeHandler) GetFees(c *gin.Context) {
	q, err := queryFromRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.feeService.Query(q)
	if err != nil {
		c.JSON(queryErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *FeeHandler) GetNotionals(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"notionals": h.feeService.GetNotionals()})
}

func (h *FeeHandler) GetCount(c *gin.Context) {
	c.JSON(http.StatusOK, h.feeService.GetCounts())
}

// ExportCSV streams the current view as a CSV attachment.
func (h *FeeHandler) ExportCSV(c *gin.Context) {
	q, err := queryFromRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.feeService.Query(q)
	if err != nil {
		c.JSON(queryErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="fees-%s.csv"`, res.Query.Notional))
	c.Status(http.StatusOK)
	if err := service.WriteCSV(c.Writer, res); err != nil {
		h.logger.WithError(err).Warn("CSV export interrupted")
	}
}

// queryFromRequest reads q, notional, sort and dir. Notional is validated
// later by the engine.
func queryFromRequest(c *gin.Context) (feequery.Query, error) {
	q := feequery.Query{
		Text:     c.Query("q"),
		Notional: c.Query("notional"),
		Sort:     feequery.DefaultSort(),
	}

	if s := c.Query("sort"); s != "" {
		field, err := feequery.ParseField(s)
		if err != nil {
			return q, err
		}
		q.Sort.Field = field
	}
	if d := c.Query("dir"); d != "" {
		dir, err := feequery.ParseDirection(d)
		if err != nil {
			return q, err
		}
		q.Sort.Dir = dir
	}
	return q, nil
}

func queryErrorStatus(err error) int {
	if errors.Is(err, feequery.ErrUnknownNotional) ||
		errors.Is(err, feequery.ErrUnknownField) ||
		errors.Is(err, feequery.ErrUnknownDirection) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
