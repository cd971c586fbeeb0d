package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/giovanabeautify/salon-scheduler/internal/catalog"
	"github.com/giovanabeautify/salon-scheduler/internal/httpresp"
	"github.com/giovanabeautify/salon-scheduler/internal/middleware"
	ucCatalog "github.com/giovanabeautify/salon-scheduler/internal/usecase/catalog"
)

type CatalogHandler struct {
	catalog      *catalog.Catalog
	addServiceUC *ucCatalog.AddService
}

func NewCatalogHandler(cat *catalog.Catalog, addServiceUC *ucCatalog.AddService) *CatalogHandler {
	return &CatalogHandler{catalog: cat, addServiceUC: addServiceUC}
}

type AddServiceRequest struct {
	Name        string `json:"name"`
	Price       string `json:"price"`
	Description string `json:"description"`
}

// List devolve o catálogo mesclado (seed + cadastrados). Rota pública:
// o cliente vê os serviços antes de criar sessão.
func (h *CatalogHandler) List(c *gin.Context) {
	entries, err := h.catalog.ListAvailable(c.Request.Context())
	if err != nil {
		respondBusiness(c, err)
		return
	}

	httpresp.List(c, entries)
}

func (h *CatalogHandler) Add(c *gin.Context) {
	callerID := c.MustGet(middleware.ContextCallerID).(string)
	isAdmin := c.MustGet(middleware.ContextIsAdmin).(bool)

	var req AddServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid_request", "details": err.Error()})
		return
	}

	svc, err := h.addServiceUC.Execute(c.Request.Context(), ucCatalog.AddServiceInput{
		Name:          req.Name,
		Price:         req.Price,
		Description:   req.Description,
		CallerID:      callerID,
		CallerIsAdmin: isAdmin,
	})
	if err != nil {
		respondBusiness(c, err)
		return
	}

	c.JSON(201, svc)
}
