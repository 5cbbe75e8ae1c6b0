package handler

import (
	"context"
	"fmt"
	"net/http"

	"tradesupport/internal/app/document"
	"tradesupport/internal/app/ds"
	"tradesupport/internal/app/dto"
	"tradesupport/internal/app/errs"
	"tradesupport/internal/app/outbox"
	"tradesupport/internal/app/repository"
	"tradesupport/internal/app/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ArchiveReader чтение архивных копий документов (MinIO)
type ArchiveReader interface {
	GetObject(ctx context.Context, name string) ([]byte, error)
}

// APIHandler содержит обработчики для REST API
type APIHandler struct {
	Service     *service.SupportRequests
	Repository  *repository.Repository
	Dispatcher  *outbox.Dispatcher
	Archive     ArchiveReader
	AuthHandler *AuthHandler
}

func NewAPIHandler(svc *service.SupportRequests, r *repository.Repository, dispatcher *outbox.Dispatcher, archive ArchiveReader, authHandler *AuthHandler) *APIHandler {
	return &APIHandler{
		Service:     svc,
		Repository:  r,
		Dispatcher:  dispatcher,
		Archive:     archive,
		AuthHandler: authHandler,
	}
}

// ============ Заявки на поддержку ============

// GetSupportRequests получает список заявок
// @Summary Список заявок на поддержку
// @Description Постраничный список с поиском и сортировкой. KAE видит только свои заявки и получает баланс в bag.
// @Tags SupportRequests
// @Produce json
// @Security BearerAuth
// @Param search query string false "Поиск по номеру, дате (2006-01-02), магазину, KAE, менеджеру или состоянию"
// @Param orderby query string false "serial, date, state, reason, store, accountexecutive, manager"
// @Param desc query bool false "Сортировка по убыванию (по умолчанию true)"
// @Param skip query int false "Пропустить записей"
// @Param top query int false "Размер страницы (по умолчанию 50, максимум 5000)"
// @Success 200 {object} dto.ListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/support-requests [get]
func (h *APIHandler) GetSupportRequests(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}

	var request dto.ListRequest
	if err := c.ShouldBindQuery(&request); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	orderBy, err := repository.ParseSortKey(request.OrderBy)
	if err != nil {
		writeError(c, err)
		return
	}

	desc := true
	if request.Desc != nil {
		desc = *request.Desc
	}

	result, err := h.Service.List(c.Request.Context(), repository.ListQuery{
		Search:          request.Search,
		OrderBy:         orderBy,
		Desc:            desc,
		Skip:            request.Skip,
		Top:             request.Top,
		IncludeInactive: request.IncludeInactive,
	}, user)
	if err != nil {
		writeError(c, err)
		return
	}

	// Преобразуем в DTO
	data := make([]dto.SupportRequestResponse, len(result.Data))
	for i := range result.Data {
		data[i] = toResponse(&result.Data[i])
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Skip:       result.Query.Skip,
		Top:        len(data),
		OrderBy:    string(result.Query.OrderBy),
		Desc:       result.Query.Desc,
		TotalCount: result.TotalCount,
		Data:       data,
		Bag:        dto.ListBag{Balance: result.Balance},
	})
}

// GetSupportRequest получает одну заявку
// @Summary Заявка на поддержку
// @Description Заявка со строками, историей состояний и кредит-нотами
// @Tags SupportRequests
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заявки"
// @Success 200 {object} dto.SupportRequestResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/support-requests/{id} [get]
func (h *APIHandler) GetSupportRequest(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	model, err := h.Service.Get(c.Request.Context(), id, user)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponse(model))
}

// SaveSupportRequest создаёт заявку (id = 0) или обновляет существующую
// @Summary Создание или изменение заявки
// @Description id = 0 создаёт черновик, иначе применяет изменения и переход состояния
// @Tags SupportRequests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SupportRequestPayload true "Заявка"
// @Success 200 {object} dto.SupportRequestResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/support-requests [post]
func (h *APIHandler) SaveSupportRequest(c *gin.Context) {
	var payload dto.SupportRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if payload.ID == 0 {
		h.create(c, payload)
		return
	}
	h.update(c, payload.ID, payload)
}

// UpdateSupportRequest изменяет заявку
// @Summary Изменение заявки
// @Description Изменение полей, строк и состояния заявки в одной транзакции
// @Tags SupportRequests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заявки"
// @Param request body dto.SupportRequestPayload true "Заявка"
// @Success 200 {object} dto.SupportRequestResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/support-requests/{id} [put]
func (h *APIHandler) UpdateSupportRequest(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var payload dto.SupportRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	h.update(c, id, payload)
}

func (h *APIHandler) create(c *gin.Context, payload dto.SupportRequestPayload) {
	user, ok := actor(c)
	if !ok {
		return
	}

	saved, events, err := h.Service.Create(c.Request.Context(), toModel(payload), user)
	if err != nil {
		writeError(c, err)
		return
	}
	h.Dispatcher.Drain(c.Request.Context(), events)

	c.JSON(http.StatusOK, toResponse(saved))
}

func (h *APIHandler) update(c *gin.Context, id uint, payload dto.SupportRequestPayload) {
	user, ok := actor(c)
	if !ok {
		return
	}
	if payload.State == "" {
		writeError(c, errs.Validation("The state field is required"))
		return
	}

	saved, events, err := h.Service.Update(c.Request.Context(), id, toModel(payload), user)
	if err != nil {
		writeError(c, err)
		return
	}
	// транзакция уже зафиксирована
	h.Dispatcher.Drain(c.Request.Context(), events)

	c.JSON(http.StatusOK, toResponse(saved))
}

// GetBalance баланс KAE
// @Summary Баланс
// @Description Одобренная минус использованная поддержка. Без user_id возвращает баланс текущего пользователя.
// @Tags SupportRequests
// @Produce json
// @Security BearerAuth
// @Param user_id query int false "ID пользователя"
// @Success 200 {object} dto.BalanceResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/support-requests/balance [get]
func (h *APIHandler) GetBalance(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}

	var query struct {
		UserID uint `form:"user_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	userID := query.UserID
	if userID == 0 {
		userID = user.ID
	}

	balance, err := h.Service.Balance(c.Request.Context(), userID, user)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{UserID: userID, Balance: balance})
}

// GetCreditNote печатная форма кредит-ноты
// @Summary Кредит-нота
// @Description PDF кредит-ноты. Архивная копия из MinIO, если она есть.
// @Tags Documents
// @Produce application/pdf
// @Security BearerAuth
// @Param id path int true "ID документа"
// @Success 200 {file} file
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/support-requests/documents/{id} [get]
func (h *APIHandler) GetCreditNote(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	note, err := h.Service.GetCreditNote(c.Request.Context(), id, user)
	if err != nil {
		writeError(c, err)
		return
	}

	data := h.archived(c.Request.Context(), note.Document)
	if data == nil {
		data, err = document.RenderCreditNote(note)
		if err != nil {
			writeError(c, err)
			return
		}
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", document.CreditNoteFileName(note)))
	c.Data(http.StatusOK, document.PDFContentType, data)
}

// archived архивная копия или nil, если её нет или хранилище недоступно
func (h *APIHandler) archived(ctx context.Context, doc ds.GeneratedDocument) []byte {
	if h.Archive == nil || doc.ArchiveKey == nil {
		return nil
	}
	data, err := h.Archive.GetObject(ctx, *doc.ArchiveKey)
	if err != nil {
		logrus.Warnf("archived credit note %s unavailable, rendering: %v", *doc.ArchiveKey, err)
		return nil
	}
	return data
}

// ExportSupportRequests выгрузка в Excel
// @Summary Выгрузка заявок
// @Description Строки заявок в xlsx, только для менеджеров и администраторов
// @Tags SupportRequests
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} file
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/support-requests/export [get]
func (h *APIHandler) ExportSupportRequests(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}

	rows, err := h.Service.Export(c.Request.Context(), user)
	if err != nil {
		writeError(c, err)
		return
	}

	data, err := document.RenderExport(rows)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="SupportRequests.xlsx"`)
	c.Data(http.StatusOK, document.XLSXContentType, data)
}
