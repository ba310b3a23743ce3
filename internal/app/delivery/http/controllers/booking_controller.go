package controllers

import (
	"context"
	"net/http"
	"telecare-service/internal/app/config"
	"telecare-service/internal/app/contracts"
	"telecare-service/internal/pkg/constvars"
	"telecare-service/internal/pkg/dto/requests"
	"telecare-service/internal/pkg/dto/responses"
	"telecare-service/internal/pkg/exceptions"
	"telecare-service/internal/pkg/utils"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type BookingController struct {
	Log            *zap.Logger
	InternalConfig *config.InternalConfig
	BookingUsecase contracts.BookingUsecase
}

func NewBookingController(logger *zap.Logger, internalConfig *config.InternalConfig, bookingUsecase contracts.BookingUsecase) *BookingController {
	return &BookingController{
		Log:            logger,
		InternalConfig: internalConfig,
		BookingUsecase: bookingUsecase,
	}
}

func (ctrl *BookingController) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("BookingController.CreateAppointment requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	var request requests.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		ctrl.Log.Error("BookingController.CreateAppointment failed to decode body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	start, err := time.Parse(time.RFC3339, request.Start)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseDateTime(err))
		return
	}
	end, err := time.Parse(time.RFC3339, request.End)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseDateTime(err))
		return
	}

	ctrl.Log.Info("BookingController.CreateAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
		zap.String(constvars.LoggingPatientIDKey, request.PatientID))

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(ctrl.InternalConfig.App.RequestTimeoutInSeconds)*time.Second)
	defer cancel()

	result, err := ctrl.BookingUsecase.BookAppointment(ctx, contracts.BookAppointmentInput{
		DoctorID:  request.DoctorID,
		PatientID: request.PatientID,
		Start:     start,
		End:       end,
	})
	if err != nil {
		ctrl.Log.Error("Error in BookingUsecase.BookAppointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("BookingController.CreateAppointment finished",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("outcome", result.Outcome))

	switch result.Outcome {
	case contracts.BookingOutcomeCommitted:
		utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateAppointmentSuccessMessage, result)
	case contracts.BookingOutcomeDuplicate:
		utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DuplicateAppointmentSuccessMessage, result)
	case contracts.BookingOutcomeOverlap:
		writeRejection(w, constvars.StatusConflict, constvars.ErrClientAppointmentOverlap, result)
	case contracts.BookingOutcomeOutsideWorkingHours:
		writeRejection(w, constvars.StatusUnprocessableEntity, constvars.ErrClientOutsideWorkingHours, result)
	default:
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrStoreUnavailable(nil))
	}
}

// writeRejection reports a business rejection. The envelope keeps the
// standard shape but carries the outcome payload so clients can show which
// appointment collided.
func writeRejection(w http.ResponseWriter, code int, message string, result *contracts.BookingResult) {
	response := responses.ResponseDTO{
		Success: false,
		Message: message,
		Data:    result,
	}
	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response)
}
