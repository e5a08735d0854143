package controller

import (
	"net/http"

	"github.com/buildmatpro/proforma-service/internal/dto"
	"github.com/buildmatpro/proforma-service/internal/service"
	"github.com/buildmatpro/proforma-service/pkg/response"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type Controller struct {
	service service.ProformaService
}

func CreateProformaController(e *echo.Group, service service.ProformaService) {
	c := Controller{
		service: service,
	}

	e.GET("/products", c.GetProducts)

	e.POST("/sessions", c.CreateSession)
	e.GET("/sessions/:sessionId/invoice", c.GetInvoice)
	e.GET("/sessions/:sessionId/invoice/csv", c.ExportCSV)
	e.PUT("/sessions/:sessionId/invoice/customer", c.UpdateCustomer)
	e.POST("/sessions/:sessionId/invoice/visibility/:flag", c.ToggleVisibility)
	e.POST("/sessions/:sessionId/invoice/items", c.ToggleItem)
	e.PUT("/sessions/:sessionId/invoice/items/:productId/quantity", c.SetQuantity)
	e.PUT("/sessions/:sessionId/invoice/items/:productId/notes", c.SetItemNotes)
	e.PUT("/sessions/:sessionId/invoice/items/:productId/image", c.SetItemImage)
	e.DELETE("/sessions/:sessionId/invoice/items/:productId", c.RemoveItem)
	e.POST("/sessions/:sessionId/invoice/items/:productId/image-edits", c.EditItemImage)
}

func (c *Controller) GetProducts(e echo.Context) error {
	resp, err := c.service.GetProducts(e.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "successfully retrieved product catalog", resp)
}

func (c *Controller) CreateSession(e echo.Context) error {
	resp, err := c.service.CreateSession(e.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "invoice session created", resp)
}

func (c *Controller) GetInvoice(e echo.Context) error {
	resp, err := c.service.GetInvoice(e.Request().Context(), e.Param("sessionId"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *Controller) ExportCSV(e echo.Context) error {
	fileName, content, err := c.service.ExportCSV(e.Request().Context(), e.Param("sessionId"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	e.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+fileName)

	return e.Blob(http.StatusOK, "text/csv", content)
}

func (c *Controller) UpdateCustomer(e echo.Context) error {
	payload := dto.CustomerRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "UpdateCustomer").Msg("")
	}

	resp, err := c.service.UpdateCustomer(e.Request().Context(), e.Param("sessionId"), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *Controller) ToggleVisibility(e echo.Context) error {
	resp, err := c.service.ToggleVisibility(e.Request().Context(), e.Param("sessionId"), e.Param("flag"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *Controller) ToggleItem(e echo.Context) error {
	payload := dto.ToggleItemRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "ToggleItem").Msg("")
	}

	resp, err := c.service.ToggleItem(e.Request().Context(), e.Param("sessionId"), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *Controller) SetQuantity(e echo.Context) error {
	payload := dto.QuantityRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "SetQuantity").Msg("")
	}

	resp, err := c.service.SetQuantity(e.Request().Context(), e.Param("sessionId"), e.Param("productId"), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *Controller) SetItemNotes(e echo.Context) error {
	payload := dto.NotesRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "SetItemNotes").Msg("")
	}

	resp, err := c.service.SetItemNotes(e.Request().Context(), e.Param("sessionId"), e.Param("productId"), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *Controller) SetItemImage(e echo.Context) error {
	payload := dto.ItemImageRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "SetItemImage").Msg("")
	}

	resp, err := c.service.SetItemImage(e.Request().Context(), e.Param("sessionId"), e.Param("productId"), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *Controller) RemoveItem(e echo.Context) error {
	resp, err := c.service.RemoveItem(e.Request().Context(), e.Param("sessionId"), e.Param("productId"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *Controller) EditItemImage(e echo.Context) error {
	payload := dto.ImageEditRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "EditItemImage").Msg("")
	}

	resp, err := c.service.EditItemImage(e.Request().Context(), e.Param("sessionId"), e.Param("productId"), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "image generated", resp)
}
