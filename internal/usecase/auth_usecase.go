package usecase

import (
	"context"
	"errors"
	"strconv"
	"time"

	"hospital-management/internal/converter"
	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/domain/entity"
	"hospital-management/internal/domain/repository"
	"hospital-management/internal/service"
	"hospital-management/pkg/jwt"
	"hospital-management/pkg/validator"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken       = errors.New("username already exists")
	ErrEmailTaken          = errors.New("email already registered")
	ErrAccountCreation     = errors.New("account could not be created")
	ErrMissingCredentials  = errors.New("username and password are required")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrDoctorAccount       = errors.New("account is registered as a doctor")
	ErrNotDoctorAccount    = errors.New("account is not registered as a doctor")
	ErrNoAdminPrivileges   = errors.New("account does not have admin privileges")
	ErrUserNotFound        = errors.New("user not found")
	ErrUnknownLoginPortal  = errors.New("unknown login portal")
	ErrRegistrationInvalid = errors.New("registration form is invalid")
)

// Registration form messages, in the order the checks run.
const (
	MsgAllFieldsRequired  = "All fields are required."
	MsgPasswordTooShort   = "Password must be at least 6 characters long."
	MsgPasswordMismatch   = "Passwords do not match."
	MsgInvalidDateOfBirth = "Invalid date of birth. Use YYYY-MM-DD."
	MsgInvalidGender      = "Please select a valid gender."
)

var registrationRules = []string{"required", "min", "eqfield", "datetime", "oneof"}

var registrationMessages = map[string]string{
	"required": MsgAllFieldsRequired,
	"min":      MsgPasswordTooShort,
	"eqfield":  MsgPasswordMismatch,
	"datetime": MsgInvalidDateOfBirth,
	"oneof":    MsgInvalidGender,
}

const dateOfBirthLayout = "2006-01-02"

// ValidationError carries the message of the first failed registration rule
// and every failed field.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrRegistrationInvalid
}

// Portal is the login page a user signs in through.
type Portal string

const (
	PortalPatient Portal = "patient"
	PortalDoctor  Portal = "doctor"
	PortalAdmin   Portal = "admin"
)

type AuthUsecase interface {
	RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.UserResponse, error)
	RegisterDoctor(ctx context.Context, req *dto.RegisterDoctorRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, portal Portal, req *dto.LoginRequest) (*dto.SessionResponse, error)
	Logout(ctx context.Context, claims *jwt.Claims) error
	GetCurrentUser(ctx context.Context, userID uint) (*dto.UserResponse, error)
}

type authUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	validator      *validator.CustomValidator
	userRepo       repository.UserRepository
	doctorRepo     repository.DoctorRepository
	patientRepo    repository.PatientRepository
	sessionService service.SessionService
	auditService   service.AuditService
	jwtService     *jwt.JWTService
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	validator *validator.CustomValidator,
	userRepo repository.UserRepository,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	sessionService service.SessionService,
	auditService service.AuditService,
	jwtService *jwt.JWTService,
) AuthUsecase {
	return &authUsecase{
		db:             db,
		log:            log,
		validator:      validator,
		userRepo:       userRepo,
		doctorRepo:     doctorRepo,
		patientRepo:    patientRepo,
		sessionService: sessionService,
		auditService:   auditService,
		jwtService:     jwtService,
	}
}

func (u *authUsecase) RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.UserResponse, error) {
	req.Normalize()
	if err := u.validateRegistration(req); err != nil {
		return nil, err
	}

	// Already checked by the datetime rule
	dob, err := time.Parse(dateOfBirthLayout, req.DateOfBirth)
	if err != nil {
		return nil, &ValidationError{Message: MsgInvalidDateOfBirth}
	}

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		u.log.Warnf("Failed to begin transaction: %+v", tx.Error)
		return nil, tx.Error
	}
	defer tx.Rollback()

	if err := u.ensureAvailable(ctx, tx, req.Username, req.Email); err != nil {
		return nil, err
	}

	user, err := u.createUser(ctx, tx, entity.RoleIDPatient, req.Username, req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		return nil, err
	}

	patient := &entity.Patient{
		UserID:      &user.ID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		DateOfBirth: dob,
		Gender:      req.Gender,
	}

	if err := u.patientRepo.Create(ctx, tx, patient); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrAccountCreation
		}
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.auditService.LogCreate(ctx, u.db, &user.ID, entity.AuditActionUserRegister, "user", user.ID, entity.JSON{
		"username": user.Username,
		"role":     entity.RolePatient,
	})

	return converter.UserToResponse(user), nil
}

func (u *authUsecase) RegisterDoctor(ctx context.Context, req *dto.RegisterDoctorRequest) (*dto.UserResponse, error) {
	req.Normalize()
	if err := u.validateRegistration(req); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		u.log.Warnf("Failed to begin transaction: %+v", tx.Error)
		return nil, tx.Error
	}
	defer tx.Rollback()

	if err := u.ensureAvailable(ctx, tx, req.Username, req.Email); err != nil {
		return nil, err
	}

	user, err := u.createUser(ctx, tx, entity.RoleIDDoctor, req.Username, req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		return nil, err
	}

	doctor := &entity.Doctor{
		UserID:         user.ID,
		Specialization: req.Specialization,
		Experience:     parseExperience(req.Experience),
		Phone:          req.Phone,
	}

	if err := u.doctorRepo.Create(ctx, tx, doctor); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrAccountCreation
		}
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.auditService.LogCreate(ctx, u.db, &user.ID, entity.AuditActionUserRegister, "user", user.ID, entity.JSON{
		"username": user.Username,
		"role":     entity.RoleDoctor,
	})

	return converter.UserToResponse(user), nil
}

func (u *authUsecase) Login(ctx context.Context, portal Portal, req *dto.LoginRequest) (*dto.SessionResponse, error) {
	if err := u.validator.Validate(req); err != nil {
		return nil, ErrMissingCredentials
	}

	// Read-only, no transaction needed
	user, err := u.userRepo.FindByUsername(ctx, u.db, req.Username)
	if err != nil {
		u.log.Warnf("Failed to find user by username: %+v", err)
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := checkPortal(portal, user); err != nil {
		return nil, err
	}

	token, err := u.sessionService.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	u.auditService.LogAction(ctx, u.db, &user.ID, entity.AuditActionUserLogin, entity.JSON{
		"portal": string(portal),
	})

	return &dto.SessionResponse{
		Token:     token,
		ExpiresIn: int64(u.jwtService.GetExpiry().Seconds()),
		User:      converter.UserToResponse(user),
	}, nil
}

func (u *authUsecase) Logout(ctx context.Context, claims *jwt.Claims) error {
	if err := u.sessionService.Revoke(ctx, claims); err != nil {
		return err
	}

	u.auditService.LogAction(ctx, u.db, &claims.UserID, entity.AuditActionUserLogout, nil)
	return nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID uint) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

// validateRegistration reports the first failed rule in registration order.
func (u *authUsecase) validateRegistration(form interface{}) error {
	err := u.validator.Validate(form)
	if err == nil {
		return nil
	}

	first, ok := u.validator.FirstFailedTag(err, registrationRules...)
	if !ok {
		return err
	}

	message, ok := registrationMessages[first.Tag()]
	if !ok {
		message = MsgAllFieldsRequired
	}
	return &ValidationError{
		Message: message,
		Fields:  u.validator.FormatValidationErrors(err),
	}
}

func (u *authUsecase) ensureAvailable(ctx context.Context, tx *gorm.DB, username, email string) error {
	taken, err := u.userRepo.ExistsByUsername(ctx, tx, username)
	if err != nil {
		u.log.Warnf("Failed to check username: %+v", err)
		return err
	}
	if taken {
		return ErrUsernameTaken
	}

	taken, err = u.userRepo.ExistsByEmail(ctx, tx, email)
	if err != nil {
		u.log.Warnf("Failed to check email: %+v", err)
		return err
	}
	if taken {
		return ErrEmailTaken
	}

	return nil
}

func (u *authUsecase) createUser(ctx context.Context, tx *gorm.DB, roleID int, username, email, password, firstName, lastName string) (*entity.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		RoleID:    roleID,
		Username:  username,
		Email:     email,
		Password:  string(hashedPassword),
		FirstName: firstName,
		LastName:  lastName,
		IsActive:  true,
	}

	if err := u.userRepo.Create(ctx, tx, user); err != nil {
		// Lost the race against a concurrent registration
		if isDuplicateKeyError(err) {
			u.log.Warnf("Failed to create user, duplicate key: %+v", err)
			return nil, ErrAccountCreation
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	return user, nil
}

func checkPortal(portal Portal, user *entity.User) error {
	switch portal {
	case PortalPatient:
		if user.IsDoctor() {
			return ErrDoctorAccount
		}
	case PortalDoctor:
		if !user.IsDoctor() {
			return ErrNotDoctorAccount
		}
	case PortalAdmin:
		if !user.IsStaff {
			return ErrNoAdminPrivileges
		}
	default:
		return ErrUnknownLoginPortal
	}
	return nil
}

// parseExperience reads years of experience. Anything that is not a
// non-negative integer counts as 0.
func parseExperience(raw string) int {
	years, err := strconv.Atoi(raw)
	if err != nil || years < 0 {
		return 0
	}
	return years
}

// isDuplicateKeyError checks if the error is a unique constraint violation
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		return pgErr.Code == "23505"
	}
	return false
}
