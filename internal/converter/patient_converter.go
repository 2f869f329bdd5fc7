package converter

import (
	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// PatientToResponse converts a Patient entity to PatientResponse DTO
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	return &dto.PatientResponse{
		ID:             patient.ID,
		UserID:         patient.UserID,
		FirstName:      patient.FirstName,
		LastName:       patient.LastName,
		FullName:       patient.FullName(),
		Email:          patient.Email,
		Phone:          patient.Phone,
		DateOfBirth:    patient.DateOfBirth.Format(dateLayout),
		Gender:         patient.Gender,
		Address:        patient.Address,
		City:           patient.City,
		MedicalHistory: patient.MedicalHistory,
		Allergies:      patient.Allergies,
		CreatedAt:      patient.CreatedAt,
	}
}

// PatientsToResponses converts a slice of Patient entities to slice of PatientResponse DTOs
func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(patients))
	for i := range patients {
		responses[i] = *PatientToResponse(&patients[i])
	}
	return responses
}
