package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/ports/services"
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/dto"
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/middleware"
	"github.com/gin-gonic/gin"
)

// documentHandler drives invoices, credit notes and purchase orders.
type documentHandler struct {
	documentService portssvc.DocumentSvcFacade
}

func newDocumentHandler(ds portssvc.DocumentSvcFacade) *documentHandler {
	return &documentHandler{documentService: ds}
}

func registerDocumentRoutes(rg *gin.RouterGroup, org *gin.RouterGroup, documentService portssvc.DocumentSvcFacade) {
	h := newDocumentHandler(documentService)

	org.POST("/documents", h.createDocument)
	org.GET("/documents", h.listDocuments)

	docs := rg.Group("/documents/:documentID")
	{
		docs.GET("", h.getDocument)
		docs.PUT("/items", h.updateItems)
		docs.POST("/request-approval", h.requestApproval)
		docs.POST("/approve", h.approve)
		docs.POST("/lock", h.lock)
	}
}

// createDocument godoc
// @Summary Create a draft document
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   orgID path string true "Organization ID"
// @Param   document body dto.CreateDocumentRequest true "Document details"
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Organization, account or tax rate not found"
// @Failure 500 {object} map[string]string "Failed to create document"
// @Security BearerAuth
// @Router /organizations/{orgID}/documents [post]
func (h *documentHandler) createDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	doc, err := h.documentService.CreateDocument(c.Request.Context(), c.Param("orgID"), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create document")
		return
	}

	logger.Info("Document created", slog.String("document_id", doc.DocumentID), slog.String("type", string(doc.Type)))
	c.JSON(http.StatusCreated, dto.ToDocumentResponse(doc))
}

// getDocument godoc
// @Summary Get a document
// @Tags documents
// @Produce  json
// @Param   documentID path string true "Document ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Document not found"
// @Failure 500 {object} map[string]string "Failed to retrieve document"
// @Security BearerAuth
// @Router /documents/{documentID} [get]
func (h *documentHandler) getDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if _, ok := requireUser(c, logger); !ok {
		return
	}

	doc, err := h.documentService.GetDocument(c.Request.Context(), c.Param("documentID"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve document")
		return
	}
	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc))
}

// listDocuments godoc
// @Summary List documents
// @Description Lists documents of the organization filtered by type and latest status
// @Tags documents
// @Produce  json
// @Param   orgID path string true "Organization ID"
// @Param   type query string false "Document type" Enums(INVOICE, CREDIT_NOTE, PURCHASE_ORDER)
// @Param   status query string false "Latest status" Enums(DRAFT, PENDING_APPROVAL, APPROVED)
// @Param   limit query int false "Page size" default(20)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {array} dto.DocumentResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list documents"
// @Security BearerAuth
// @Router /organizations/{orgID}/documents [get]
func (h *documentHandler) listDocuments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListDocumentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListDocuments", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	if _, ok := requireUser(c, logger); !ok {
		return
	}

	docs, err := h.documentService.ListDocuments(c.Request.Context(), c.Param("orgID"), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list documents")
		return
	}
	c.JSON(http.StatusOK, dto.ToListDocumentResponse(docs))
}

// updateItems godoc
// @Summary Replace document items
// @Description Replaces every item of a draft document. The version must match the stored one.
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   documentID path string true "Document ID"
// @Param   items body dto.UpdateDocumentItemsRequest true "New items"
// @Success 200 {object} dto.DocumentResponse
// @Failure 400 {object} map[string]string "Invalid input or document not in draft"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Document not found"
// @Failure 409 {object} map[string]string "Document changed concurrently"
// @Failure 500 {object} map[string]string "Failed to update items"
// @Security BearerAuth
// @Router /documents/{documentID}/items [put]
func (h *documentHandler) updateItems(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateDocumentItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateItems", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	doc, err := h.documentService.UpdateItems(c.Request.Context(), c.Param("documentID"), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to update items")
		return
	}
	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc))
}

// requestApproval godoc
// @Summary Request approval of a document
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   documentID path string true "Document ID"
// @Param   request body dto.RequestApprovalRequest true "Approver"
// @Success 200 {object} dto.DocumentResponse
// @Failure 400 {object} map[string]string "Invalid input or status transition"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Document not found"
// @Failure 409 {object} map[string]string "Document changed concurrently"
// @Failure 500 {object} map[string]string "Failed to request approval"
// @Security BearerAuth
// @Router /documents/{documentID}/request-approval [post]
func (h *documentHandler) requestApproval(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RequestApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RequestApproval", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	doc, err := h.documentService.RequestApproval(c.Request.Context(), c.Param("documentID"), req.ApproverID, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to request approval")
		return
	}
	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc))
}

// approve godoc
// @Summary Approve a document
// @Description Approves a pending document as the authenticated user and posts its ledger transaction
// @Tags documents
// @Produce  json
// @Param   documentID path string true "Document ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 400 {object} map[string]string "Invalid status transition"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Caller is not the requested approver"
// @Failure 404 {object} map[string]string "Document not found"
// @Failure 409 {object} map[string]string "Document changed concurrently"
// @Failure 422 {object} map[string]string "Already approved, locked period or missing ledger account"
// @Failure 500 {object} map[string]string "Failed to approve document"
// @Security BearerAuth
// @Router /documents/{documentID}/approve [post]
func (h *documentHandler) approve(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	approverID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	documentID := c.Param("documentID")
	doc, err := h.documentService.Approve(c.Request.Context(), documentID, approverID)
	if err != nil {
		respondError(c, logger.With(slog.String("document_id", documentID)), err, "Failed to approve document")
		return
	}

	logger.Info("Document approved",
		slog.String("document_id", documentID),
		slog.String("transaction_id", doc.TransactionID))
	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc))
}

// lock godoc
// @Summary Lock a credit note
// @Tags documents
// @Produce  json
// @Param   documentID path string true "Document ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 400 {object} map[string]string "Document is not a credit note"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Document not found"
// @Failure 422 {object} map[string]string "Credit note not approved or already locked"
// @Failure 500 {object} map[string]string "Failed to lock document"
// @Security BearerAuth
// @Router /documents/{documentID}/lock [post]
func (h *documentHandler) lock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	doc, err := h.documentService.LockCreditNote(c.Request.Context(), c.Param("documentID"), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to lock document")
		return
	}
	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc))
}
