package handler

import (
	"github.com/gin-gonic/gin"

	"lavtracker/backend/internal/dto"
	"lavtracker/backend/internal/service"
	"lavtracker/backend/pkg/response"
)

// BranchHandler 分支模块 HTTP 处理器
type BranchHandler struct {
	branchSvc service.BranchService
}

// NewBranchHandler 创建 BranchHandler
func NewBranchHandler(branchSvc service.BranchService) *BranchHandler {
	return &BranchHandler{branchSvc: branchSvc}
}

// ListBranches 分支 → 区域 → 卫生间树
// GET /api/branches
func (h *BranchHandler) ListBranches(c *gin.Context) {
	branches, err := h.branchSvc.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, dto.BranchListResponse{Branches: branches})
}

// CreateBranch 创建分支
// POST /api/branches
func (h *BranchHandler) CreateBranch(c *gin.Context) {
	var req dto.CreateBranchRequest
	if !bindJSON(c, &req, "Name is required") {
		return
	}

	branch, err := h.branchSvc.Create(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.CreatedWithMessage(c, "Branch created successfully", dto.BranchResponse{Branch: branch})
}

// UpdateBranch 更新分支
// PATCH /api/branches
func (h *BranchHandler) UpdateBranch(c *gin.Context) {
	var req dto.UpdateBranchRequest
	if !bindJSON(c, &req, "branchId is required") {
		return
	}

	branches, err := h.branchSvc.Update(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OKWithMessage(c, "Branch updated successfully", dto.BranchListResponse{Branches: branches})
}

// DeleteBranch 删除分支及其下属数据
// DELETE /api/branches?branchId=
func (h *BranchHandler) DeleteBranch(c *gin.Context) {
	var req dto.DeleteBranchRequest
	if !bindQuery(c, &req, "branchId is required") {
		return
	}

	branches, err := h.branchSvc.Delete(c.Request.Context(), req.BranchID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OKWithMessage(c, "Branch deleted successfully", dto.BranchListResponse{Branches: branches})
}
