package models

import "time"

// Player представляет игрока. Document paths are independently nullable:
// a registration may arrive with any subset of the five supporting documents.
type Player struct {
	ID            int    `json:"id" db:"id"`
	TeamID        string `json:"team_id" db:"team_id"`
	AadhaarNumber string `json:"aadhaar_number" db:"aadhaar_number"`

	FirstName  string `json:"first_name" db:"first_name"`
	MiddleName string `json:"middle_name" db:"middle_name"`
	LastName   string `json:"last_name" db:"last_name"`
	Gender     string `json:"gender" db:"gender"`
	BloodGroup string `json:"blood_group" db:"blood_group"`
	Email      string `json:"email" db:"email"`
	Mobile     string `json:"mobile" db:"mobile"`

	PermanentAddress      string `json:"permanent_address" db:"permanent_address"`
	CorrespondenceAddress string `json:"correspondence_address" db:"correspondence_address"`

	BirthCertNumber  string `json:"birth_cert_number" db:"birth_cert_number"`
	BirthCertDate    string `json:"birth_cert_date" db:"birth_cert_date"`
	BirthCertPlace   string `json:"birth_cert_place" db:"birth_cert_place"`
	SchoolCertNumber string `json:"school_cert_number" db:"school_cert_number"`
	SSCCertDate      string `json:"ssc_cert_date" db:"ssc_cert_date"`

	FatherName       string `json:"father_name" db:"father_name"`
	MotherName       string `json:"mother_name" db:"mother_name"`
	GuardianName     string `json:"guardian_name" db:"guardian_name"`
	RelationType     string `json:"relation_type" db:"relation_type"`
	GuardianAddress  string `json:"guardian_address" db:"guardian_address"`
	EmergencyContact string `json:"emergency_contact" db:"emergency_contact"`

	DateOfBirth string `json:"date_of_birth" db:"date_of_birth"`
	Age         int    `json:"age" db:"age"`

	PlayerType      string `json:"player_type" db:"player_type"`
	BattingStyle    string `json:"batting_style" db:"batting_style"`
	BowlingStyle    string `json:"bowling_style" db:"bowling_style"`
	BattingPosition string `json:"batting_position" db:"batting_position"`
	LastAssociation string `json:"last_association" db:"last_association"`
	LastYear        string `json:"last_year" db:"last_year"`

	AadhaarDocPath        *string `json:"aadhaar_doc_path,omitempty" db:"aadhaar_doc_path"`
	BirthCertificatePath  *string `json:"birth_certificate_path,omitempty" db:"birth_certificate_path"`
	SSCCertificatePath    *string `json:"ssc_certificate_path,omitempty" db:"ssc_certificate_path"`
	SchoolLeavingCertPath *string `json:"school_leaving_cert_path,omitempty" db:"school_leaving_cert_path"`
	PassportPath          *string `json:"passport_path,omitempty" db:"passport_path"`

	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
