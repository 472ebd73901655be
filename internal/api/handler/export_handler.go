package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"lavtracker/backend/internal/dto"
	"lavtracker/backend/internal/service"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportCleanings 导出清洁记录
// GET /api/export/cleanings?locationId=&from=&to=
func (h *ExportHandler) ExportCleanings(c *gin.Context) {
	var req dto.ExportCleaningsRequest
	if !bindQuery(c, &req, "locationId required") {
		return
	}

	buf, filename, err := h.exportSvc.ExportCleanings(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	setAttachment(c, filename)
	c.Data(http.StatusOK, contentTypeXLSX, buf.Bytes())
}

// ExportInspections 导出巡检日历
// GET /api/export/inspections.ics?locationId=
func (h *ExportHandler) ExportInspections(c *gin.Context) {
	var req dto.ExportInspectionsRequest
	if !bindQuery(c, &req, "locationId required") {
		return
	}

	data, filename, err := h.exportSvc.ExportInspections(c.Request.Context(), req.LocationID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	setAttachment(c, filename)
	c.Data(http.StatusOK, contentTypeICS, data)
}

// 设置下载响应头
func setAttachment(c *gin.Context, filename string) {
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
}
