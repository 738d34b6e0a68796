package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"classroom-backend/services"
	"classroom-backend/utils"
)

type CreateIssuePayload struct {
	Issues      string `json:"issues" binding:"required"`
	Description string `json:"description"`
	ImagePath   string `json:"imagePath"`
}

type IssueController struct {
	IssueSvc *services.IssueService
}

func NewIssueController(issueSvc *services.IssueService) *IssueController {
	return &IssueController{IssueSvc: issueSvc}
}

// CreateIssue handles POST /api/rooms/:id/issues.
func (ctl *IssueController) CreateIssue(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}
	roomID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var payload CreateIssuePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	issue, err := ctl.IssueSvc.CreateIssue(services.CreateIssueRequest{
		UserID:      userID,
		RoomID:      roomID,
		Issues:      payload.Issues,
		Description: payload.Description,
		ImagePath:   payload.ImagePath,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, issue)
}

// ListIssues handles GET /api/issues; ?unresolved=true narrows to the
// dispatcher queue.
func (ctl *IssueController) ListIssues(c *gin.Context) {
	var (
		issues interface{}
		err    error
	)
	if c.Query("unresolved") == "true" {
		issues, err = ctl.IssueSvc.GetUnresolvedIssues()
	} else {
		issues, err = ctl.IssueSvc.GetAllIssues()
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, issues)
}

// MyIssues handles GET /api/issues/my.
func (ctl *IssueController) MyIssues(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}
	issues, err := ctl.IssueSvc.GetIssuesByUser(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, issues)
}

// GetIssue handles GET /api/issues/:id.
func (ctl *IssueController) GetIssue(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	issue, err := ctl.IssueSvc.GetIssueByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, issue)
}

// ResolveIssue handles POST /api/issues/:id/resolve.
func (ctl *IssueController) ResolveIssue(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	issue, err := ctl.IssueSvc.MarkResolved(id, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, issue)
}

// DeleteIssue handles DELETE /api/issues/:id.
func (ctl *IssueController) DeleteIssue(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := ctl.IssueSvc.DeleteIssue(id, userID); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
