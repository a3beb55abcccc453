package reply

import (
	"context"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"realty_extractor/internal/domain"
	"realty_extractor/pkg/contextx"
	"realty_extractor/pkg/errcodes"
	"realty_extractor/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

type errorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	SupportID string `json:"supportId"`
}

func (e *errorResponse) WithDefaultCode(code errcodes.ErrorCode) {
	if e.Code == "" {
		e.Code = code.String()
	}
}

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

//nolint:gochecknoglobals
var statusByCode = map[errcodes.ErrorCode]int{
	errcodes.ValidationError:  http.StatusBadRequest,
	errcodes.InvalidListingID: http.StatusBadRequest,
	errcodes.EmptyListingText: http.StatusBadRequest,
	errcodes.InvalidPaging:    http.StatusBadRequest,
	errcodes.NotFound:         http.StatusNotFound,
	errcodes.ListingNotFound:  http.StatusNotFound,
	errcodes.TaskNotFound:     http.StatusNotFound,
	errcodes.TimeoutExceeded:  http.StatusGatewayTimeout,
}

func OK(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
}

func Created(w http.ResponseWriter) {
	w.WriteHeader(http.StatusCreated)
}

func JSON(ctx context.Context, w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger(ctx).Error("json.Encode", logx.Error(err))
	}
}

func Error(ctx context.Context, w http.ResponseWriter, err error) {
	logger(ctx).Error("error", logx.Error(err))

	code, _ := domain.GetCode(err)

	response := errorResponse{
		Code:      code.String(),
		Message:   domain.Description(err),
		SupportID: supportID(ctx),
	}

	status, ok := statusByCode[code]
	if !ok {
		response.Code = ""
		response.Message = ""
		response.WithDefaultCode(errcodes.InternalServerError)
		JSON(ctx, w, http.StatusInternalServerError, response)

		return
	}

	JSON(ctx, w, status, response)
}

func supportID(ctx context.Context) string {
	traceID, err := contextx.TraceIDFromContext(ctx)
	if err != nil {
		return "unsupported"
	}

	return traceID.String()
}
