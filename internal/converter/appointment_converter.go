package converter

import (
	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/domain/entity"
)

// AppointmentToResponse expects Patient and Doctor.User to be preloaded
func AppointmentToResponse(appointment *entity.Appointment) dto.AppointmentResponse {
	return dto.AppointmentResponse{
		ID:              appointment.ID,
		PatientID:       appointment.PatientID,
		PatientName:     appointment.Patient.FullName(),
		DoctorID:        appointment.DoctorID,
		DoctorName:      appointment.Doctor.User.FullName(),
		Specialization:  appointment.Doctor.Specialization,
		AppointmentDate: appointment.AppointmentDate,
		Reason:          appointment.Reason,
		Status:          string(appointment.Status),
		Notes:           appointment.Notes,
	}
}

func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = AppointmentToResponse(&appointments[i])
	}
	return responses
}
