package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pdv-backend-go/internal/core"
	"pdv-backend-go/internal/models"
)

// ColaboradorHandler handles API endpoints related to colaboradores.
type ColaboradorHandler struct {
	colaboradorService core.ColaboradorService
}

// NewColaboradorHandler creates a new ColaboradorHandler.
func NewColaboradorHandler(cs core.ColaboradorService) *ColaboradorHandler {
	return &ColaboradorHandler{colaboradorService: cs}
}

// List handles GET /colaboradores. Filters arrive as query parameters:
// busca, status, departamento, cargo and page.
func (h *ColaboradorHandler) List(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	page := 1
	if raw := c.Query("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid page number", Details: raw})
			return
		}
		page = parsed
	}

	result, err := h.colaboradorService.List(c.Request.Context(), core.ListColaboradoresQuery{
		Busca:        c.Query("busca"),
		Status:       c.Query("status"),
		Departamento: c.Query("departamento"),
		Cargo:        c.Query("cargo"),
		Page:         page,
	})
	if err != nil {
		mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Get handles GET /colaboradores/:id
func (h *ColaboradorHandler) Get(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Colaborador ID is required"})
		return
	}

	colaborador, err := h.colaboradorService.GetByID(c.Request.Context(), id)
	if err != nil {
		mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, colaborador)
}

// Create handles POST /colaboradores. Provisions the colaborador record
// together with its auth account and sends the welcome email.
func (h *ColaboradorHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.CreateColaboradorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	created, err := h.colaboradorService.CreateWithAccount(c.Request.Context(), userID, req)
	if err != nil {
		mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Update handles PATCH /colaboradores/:id
func (h *ColaboradorHandler) Update(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Colaborador ID is required"})
		return
	}

	var req models.UpdateColaboradorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	updated, err := h.colaboradorService.Update(c.Request.Context(), id, req)
	if err != nil {
		mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /colaboradores/:id
func (h *ColaboradorHandler) Delete(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Colaborador ID is required"})
		return
	}

	if err := h.colaboradorService.Delete(c.Request.Context(), id); err != nil {
		mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Colaborador removido com sucesso"})
}

// UpdatePermissoes handles PUT /colaboradores/:id/permissoes
func (h *ColaboradorHandler) UpdatePermissoes(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Colaborador ID is required"})
		return
	}

	var req models.UpdatePermissoesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	updated, err := h.colaboradorService.UpdatePermissoes(c.Request.Context(), id, req.Permissoes)
	if err != nil {
		mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

type togglePermissaoRequest struct {
	Flag  core.PermissaoFlag `json:"flag" binding:"required"`
	Value *bool              `json:"value" binding:"required"`
}

// TogglePermissao handles PATCH /colaboradores/:id/permissoes/:modulo
func (h *ColaboradorHandler) TogglePermissao(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Colaborador ID is required"})
		return
	}

	var req togglePermissaoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	modulo := models.ModuloSistema(c.Param("modulo"))
	updated, err := h.colaboradorService.TogglePermissao(c.Request.Context(), id, modulo, req.Flag, *req.Value)
	if err != nil {
		mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
