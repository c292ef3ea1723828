package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/insureline/policy-admin/internal/core/domain"
	"github.com/insureline/policy-admin/internal/core/ports"
)

// ProductHandler handles HTTP requests for the policy product catalog.
type ProductHandler struct {
	catalog ports.CatalogService
	audit   ports.AuditRecorder
}

func NewProductHandler(catalog ports.CatalogService, audit ports.AuditRecorder) *ProductHandler {
	return &ProductHandler{catalog: catalog, audit: audit}
}

// Create handles POST /v1/products.
//
// @Summary      Create a policy product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProductRequest  true  "Product definition"
// @Success      201   {object}  domain.PolicyProduct
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.catalog.Create(c.Request().Context(), p, ports.CreateProductInput{
		Code:          req.Code,
		Title:         req.Title,
		Description:   req.Description,
		Premium:       req.Premium,
		TermMonths:    req.TermMonths,
		MinSumInsured: req.MinSumInsured,
	})
	if err != nil {
		return err
	}

	recordAudit(c, h.audit, p.ID, domain.ProductCreateDetails{
		ProductID: product.ID,
		Code:      product.Code,
		Premium:   product.Premium,
	})

	return c.JSON(http.StatusCreated, product)
}

// Update handles PUT /v1/products/:id.
//
// @Summary      Update a policy product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Product id"
// @Param        body  body      updateProductRequest  true  "Fields to change"
// @Success      200   {object}  domain.PolicyProduct
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.catalog.Update(c.Request().Context(), p, c.Param("id"), ports.UpdateProductInput{
		Code:          req.Code,
		Title:         req.Title,
		Description:   req.Description,
		Premium:       req.Premium,
		TermMonths:    req.TermMonths,
		MinSumInsured: req.MinSumInsured,
	})
	if err != nil {
		return err
	}

	recordAudit(c, h.audit, p.ID, domain.ProductUpdateDetails{ProductID: product.ID, Code: product.Code})

	return c.JSON(http.StatusOK, product)
}

// Delete handles DELETE /v1/products/:id.
//
// @Summary      Delete a policy product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Product id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /v1/products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	id := c.Param("id")

	// Read before delete so the audit entry can carry the code.
	product, err := h.catalog.Get(c.Request().Context(), p, id)
	if err != nil {
		return err
	}

	if err := h.catalog.Delete(c.Request().Context(), p, id); err != nil {
		return err
	}

	recordAudit(c, h.audit, p.ID, domain.ProductDeleteDetails{ProductID: id, Code: product.Code})

	return c.NoContent(http.StatusNoContent)
}

// Get handles GET /v1/products/:id.
//
// @Summary      Get a policy product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Product id"
// @Success      200  {object}  domain.PolicyProduct
// @Failure      404  {object}  map[string]string
// @Router       /v1/products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	product, err := h.catalog.Get(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// List handles GET /v1/products.
//
// @Summary      List policy products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Partial match on code/title/description"
// @Param        page    query     int     false  "Page number (1-based)"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  pageEnvelope
// @Router       /v1/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.catalog.List(c.Request().Context(), p, ports.ListProductsInput{
		Search: c.QueryParam("search"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, pageEnvelope{Items: result.Items, Page: result.Page})
}
