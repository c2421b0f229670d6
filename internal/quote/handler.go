package quote

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/niltaduartte/humano-saude-sub001/internal/middleware"
)

type Handler struct {
	service *Service
	log     *zap.Logger
}

func NewHandler(service *Service, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{service: service, log: log}
}

// POST /quote/simulate
func (h *Handler) Simulate(c *gin.Context) {
	var req SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if req.ValorAtual.IsZero() || len(req.Idades) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "valor_atual and idades required",
		})
		return
	}

	res, err := h.service.Simulate(c.Request.Context(), req.toRequest())
	if err != nil {
		h.fail(c, "simulate", err)
		return
	}

	c.JSON(http.StatusOK, NewSimulateResponse(res))
}

// POST /quote/plans
func (h *Handler) Plans(c *gin.Context) {
	var req PlansRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	ages := make([]string, len(req.Idades))
	for i, a := range req.Idades {
		ages[i] = string(a)
	}

	listings, err := h.service.ListPlans(c.Request.Context(), PlanQuery{
		ContractType:  req.TipoContratacao,
		Accommodation: req.Acomodacao,
		Ages:          ages,
	})
	if err != nil {
		h.fail(c, "list plans", err)
		return
	}

	c.JSON(http.StatusOK, NewPlansResponse(listings))
}

// GET /quote/brackets
func (h *Handler) Brackets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"faixas": NewBracketsResponse(),
	})
}

// GET /quote/carriers
func (h *Handler) Carriers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"operadoras": NewCarriersResponse(h.service.Carriers()),
	})
}

// fail maps validation errors to 400. Anything else is logged and hidden
// behind a generic 500.
func (h *Handler) fail(c *gin.Context, op string, err error) {
	if errors.Is(err, ErrInvalidRequest) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.log.Error(op+" failed",
		zap.String("request_id", c.GetString(middleware.RequestIDKey)),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
