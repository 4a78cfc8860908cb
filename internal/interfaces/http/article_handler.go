package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gela-api/internal/application/dto"
	"github.com/jhoicas/gela-api/internal/application/usecase"
	"github.com/jhoicas/gela-api/pkg/logger"
)

const resourceArticle = "Article"

// ArticleHandler maneja las peticiones HTTP para Article. Escrituras protegidas.
type ArticleHandler struct {
	uc  *usecase.ArticleUseCase
	log *logger.Logger
}

// NewArticleHandler construye el handler.
func NewArticleHandler(uc *usecase.ArticleUseCase, log *logger.Logger) *ArticleHandler {
	return &ArticleHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar artículos
// @Tags         articles
// @Produce      json
// @Success      200  {array}   dto.ArticleResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /articles [get]
func (h *ArticleHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, h.log, resourceArticle, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener artículo por ID
// @Tags         articles
// @Produce      json
// @Param        id   path  int  true  "ID del artículo"
// @Success      200  {object}  dto.ArticleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /articles/{id} [get]
func (h *ArticleHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, h.log, resourceArticle, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, resourceArticle, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear artículo
// @Tags         articles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ArticleRequest  true  "Datos del artículo"
// @Success      201   {object}  dto.ArticleResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /articles [post]
func (h *ArticleHandler) Create(c *fiber.Ctx) error {
	var in dto.ArticleRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, h.log, resourceArticle, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, resourceArticle, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Reemplazar artículo
// @Description  Reemplazo completo: todos los campos son obligatorios.
// @Tags         articles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                 true  "ID del artículo"
// @Param        body  body  dto.ArticleRequest  true  "Datos del artículo"
// @Success      200   {object}  dto.ArticleResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /articles/{id} [put]
func (h *ArticleHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, h.log, resourceArticle, err)
	}
	var in dto.ArticleRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, h.log, resourceArticle, err)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, h.log, resourceArticle, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar artículo
// @Tags         articles
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del artículo"
// @Success      200  {object}  dto.MessageResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /articles/{id} [delete]
func (h *ArticleHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, h.log, resourceArticle, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, h.log, resourceArticle, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Article deleted successfully."})
}
