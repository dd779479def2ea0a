package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-playground/validator/v10"

	"github.com/jconover/k8s-microservices-platform/internal/domain"
	"github.com/jconover/k8s-microservices-platform/internal/httpjson"
)

var Validate = validator.New(validator.WithRequiredStructEnabled())

type CreateProductRequest struct {
	Name          string   `json:"name" validate:"required"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price" validate:"required,gte=0"`
	StockQuantity *int     `json:"stock_quantity" validate:"omitempty,gte=0"`
	Category      *string  `json:"category"`
}

// listProductsHandler godoc
//
//	@Summary		List products
//	@Description	Returns up to 100 most recently created products, newest first
//	@Tags			products
//	@Produce		json
//	@Success		200	{array}		domain.Product
//	@Failure		500	{object}	httpjson.ErrorResponse
//	@Router			/api/products [get]
func (app *application) listProductsHandler(w http.ResponseWriter, r *http.Request) {
	payload, err := app.productService.List(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := httpjson.WriteRaw(w, http.StatusOK, payload); err != nil {
		app.logger.Errorw("failed to write response", "error", err)
	}
}

// getProductHandler godoc
//
//	@Summary		Get product by ID
//	@Description	Returns a single product
//	@Tags			products
//	@Produce		json
//	@Param			id	path		int	true	"Product ID"
//	@Success		200	{object}	domain.Product
//	@Failure		404	{object}	httpjson.ErrorResponse
//	@Failure		500	{object}	httpjson.ErrorResponse
//	@Router			/api/products/{id} [get]
func (app *application) getProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	payload, err := app.productService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			app.notFoundResponse(w, r)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := httpjson.WriteRaw(w, http.StatusOK, payload); err != nil {
		app.logger.Errorw("failed to write response", "error", err)
	}
}

// createProductHandler godoc
//
//	@Summary		Create product
//	@Description	Creates a product; name and price are required
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateProductRequest	true	"Product payload"
//	@Success		201		{object}	domain.Product
//	@Failure		400		{object}	httpjson.ErrorResponse
//	@Failure		500		{object}	httpjson.ErrorResponse
//	@Router			/api/products [post]
func (app *application) createProductHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := httpjson.Read(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.validationFailedResponse(w, r, err)
		return
	}

	product := &domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Category:    req.Category,
	}
	if req.StockQuantity != nil {
		product.StockQuantity = *req.StockQuantity
	}

	if err := app.productService.Create(r.Context(), product); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			app.validationFailedResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := httpjson.Write(w, http.StatusCreated, product); err != nil {
		app.logger.Errorw("failed to write response", "error", err)
	}
}

// updateProductHandler godoc
//
//	@Summary		Update product
//	@Description	Partially updates a product; omitted fields keep their value
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Product ID"
//	@Param			request	body		domain.ProductUpdate	true	"Fields to update"
//	@Success		200		{object}	domain.Product
//	@Failure		404		{object}	httpjson.ErrorResponse
//	@Failure		500		{object}	httpjson.ErrorResponse
//	@Router			/api/products/{id} [put]
func (app *application) updateProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	var update domain.ProductUpdate
	if err := httpjson.Read(w, r, &update); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	product, err := app.productService.Update(r.Context(), id, update)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			app.notFoundResponse(w, r)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := httpjson.Write(w, http.StatusOK, product); err != nil {
		app.logger.Errorw("failed to write response", "error", err)
	}
}

// deleteProductHandler godoc
//
//	@Summary		Delete product
//	@Description	Deletes a product permanently
//	@Tags			products
//	@Produce		json
//	@Param			id	path		int	true	"Product ID"
//	@Success		200	{object}	map[string]string
//	@Failure		404	{object}	httpjson.ErrorResponse
//	@Failure		500	{object}	httpjson.ErrorResponse
//	@Router			/api/products/{id} [delete]
func (app *application) deleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	if _, err := app.productService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			app.notFoundResponse(w, r)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	response := map[string]string{
		"message": "Product deleted successfully",
	}

	if err := httpjson.Write(w, http.StatusOK, response); err != nil {
		app.logger.Errorw("failed to write response", "error", err)
	}
}
