package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/tramitefacil-api/internal/application/dto"
	"github.com/jhoicas/tramitefacil-api/internal/application/usecase"
)

// CompanyHandler maneja las peticiones HTTP para el recurso Empresa.
type CompanyHandler struct {
	uc          *usecase.CompanyUseCase
	obligations *usecase.ObligationUseCase
	reports     *usecase.ReportUseCase
	clock       Clock
	log         zerolog.Logger
}

// NewCompanyHandler construye el handler inyectando los casos de uso.
func NewCompanyHandler(
	uc *usecase.CompanyUseCase,
	obligations *usecase.ObligationUseCase,
	reports *usecase.ReportUseCase,
	clock Clock,
	log zerolog.Logger,
) *CompanyHandler {
	return &CompanyHandler{uc: uc, obligations: obligations, reports: reports, clock: clock, log: log}
}

// Create godoc
// @Summary      Crear empresa
// @Tags         empresas
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCompanyRequest  true  "Datos de la empresa"
// @Success      201   {object}  dto.CompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/empresas [post]
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar empresas del usuario
// @Tags         empresas
// @Produce      json
// @Success      200  {array}  dto.CompanyResponse
// @Router       /api/empresas [get]
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// ListObligations godoc
// @Summary      Obligaciones de una empresa
// @Tags         empresas
// @Produce      json
// @Param        id   path  int  true  "ID de la empresa"
// @Success      200  {array}   dto.ObligationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/empresas/{id}/obligaciones [get]
func (h *CompanyHandler) ListObligations(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c)
	}
	out, err := h.obligations.ListByCompany(c.UserContext(), GetUserID(c), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// DownloadReport godoc
// @Summary      Reporte PDF de obligaciones de una empresa
// @Tags         empresas
// @Produce      application/pdf
// @Param        id   path  int  true  "ID de la empresa"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/empresas/{id}/obligaciones/pdf [get]
func (h *CompanyHandler) DownloadReport(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c)
	}
	pdfBytes, filename, err := h.reports.CompanyObligationsPDF(c.UserContext(), GetUserID(c), id, h.clock.Today())
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
