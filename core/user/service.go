package user

import (
	"bytes"
	"context"
	"net/mail"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/dailysutra/core"
	"github.com/trezcool/dailysutra/core/subscription"
)

var (
	// errors
	ErrNotFound    = errors.New("user not found")
	ErrEmailExists = errors.New("a user with this email already exists")
)

type (
	Repository interface {
		CheckEmailUniqueness(ctx context.Context, email string, excludedUsers ...User) error
		CreateUser(ctx context.Context, usr User) (User, error)
		GetUserByID(ctx context.Context, id string) (User, error)
		GetUserByEmail(ctx context.Context, email string) (User, error)
		UpdateUser(ctx context.Context, usr User) (User, error)
		DeleteUser(ctx context.Context, id string) error
	}

	Service interface {
		CheckEmailUniqueness(ctx context.Context, email string, exclUsers ...User) error
		Register(ctx context.Context, nu NewUser) (User, error)
		GetByID(ctx context.Context, id string) (User, error)
		GetByEmail(ctx context.Context, email string) (User, error)
		SetLastLogin(ctx context.Context, usr User) (User, error)
		Update(ctx context.Context, usr User, uu UpdateUser) (User, error)
		VerifyEmail(ctx context.Context, data VerifyEmail) (User, error)
		RequestPasswordReset(ctx context.Context, email string) error
		ResetPassword(ctx context.Context, data ResetUserPassword) error
		SendUpgradeReceipt(usr User)
		SendGoodbye(usr User, export []byte)
		Delete(ctx context.Context, id string) error
	}

	service struct {
		repo     Repository
		subSvc   subscription.Service
		mailSvc  core.EmailService
		tokenGen tokenGenerator
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, subSvc subscription.Service, mailSvc core.EmailService, conf *core.Config) Service {
	return &service{
		repo:     repo,
		subSvc:   subSvc,
		mailSvc:  mailSvc,
		tokenGen: newTokenGenerator(conf.SecretKey, conf.PasswordResetTimeoutDelta),
	}
}

func (svc *service) CheckEmailUniqueness(ctx context.Context, email string, exclUsers ...User) error {
	if err := svc.repo.CheckEmailUniqueness(ctx, email, exclUsers...); err != nil {
		if errors.Cause(err) == ErrEmailExists {
			return core.NewValidationError(err, core.FieldError{Field: "email", Error: ErrEmailExists.Error()})
		}
		return err
	}
	return nil
}

func (svc *service) Register(ctx context.Context, nu NewUser) (User, error) {
	now := NowFunc().UTC()
	usr := User{
		Name:      nu.Name,
		Email:     nu.Email,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, errors.Wrap(err, "setting password")
	}
	usr, err := svc.repo.CreateUser(ctx, usr)
	if err != nil {
		return User{}, errors.Wrap(err, "creating user")
	}
	if err = svc.sendTokenMail(usr, PurposeVerifyEmail, "Verify your email", "verify_email"); err != nil {
		return User{}, errors.Wrap(err, "sending verification email")
	}
	return usr, nil
}

func (svc *service) GetByID(ctx context.Context, id string) (User, error) {
	return svc.repo.GetUserByID(ctx, id)
}

func (svc *service) GetByEmail(ctx context.Context, email string) (User, error) {
	return svc.repo.GetUserByEmail(ctx, core.CleanString(email, true /* lower */))
}

func (svc *service) SetLastLogin(ctx context.Context, usr User) (User, error) {
	now := NowFunc().UTC().Truncate(time.Microsecond)
	usr.LastLogin = null.TimeFrom(now)
	usr.UpdatedAt = now
	return svc.repo.UpdateUser(ctx, usr)
}

func (svc *service) Update(ctx context.Context, usr User, uu UpdateUser) (User, error) {
	usr.Name = uu.Name
	usr.UpdatedAt = NowFunc().UTC()
	if uu.Password != "" {
		if err := usr.SetPassword(uu.Password); err != nil {
			return User{}, errors.Wrap(err, "setting password")
		}
	}
	return svc.repo.UpdateUser(ctx, usr)
}

// VerifyEmail marks the email of the user as verified and starts their trial.
func (svc *service) VerifyEmail(ctx context.Context, data VerifyEmail) (User, error) {
	usr, err := svc.userFromToken(ctx, data.UID, data.Token, PurposeVerifyEmail)
	if err != nil {
		return User{}, err
	}

	usr.EmailVerified = true
	usr.UpdatedAt = NowFunc().UTC()
	if usr, err = svc.repo.UpdateUser(ctx, usr); err != nil {
		return User{}, errors.Wrap(err, "updating user")
	}
	if _, err = svc.subSvc.StartTrial(ctx, usr.ID); err != nil {
		return User{}, errors.Wrap(err, "starting trial")
	}
	return usr, nil
}

func (svc *service) RequestPasswordReset(ctx context.Context, email string) error {
	usr, err := svc.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if !usr.IsActive {
		return ErrNotFound
	}
	return svc.sendTokenMail(usr, PurposePasswordReset, "Password reset", "password_reset")
}

func (svc *service) ResetPassword(ctx context.Context, data ResetUserPassword) error {
	usr, err := svc.userFromToken(ctx, data.UID, data.Token, PurposePasswordReset)
	if err != nil {
		return err
	}
	if err = usr.SetPassword(data.Password); err != nil {
		return errors.Wrap(err, "setting password")
	}
	usr.UpdatedAt = NowFunc().UTC()
	_, err = svc.repo.UpdateUser(ctx, usr)
	return errors.Wrap(err, "updating user")
}

func (svc *service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteUser(ctx, id)
}

// userFromToken finds the user identified by `uid` & checks their `token`.
// Every failure is reported as a validation error on the token field.
func (svc *service) userFromToken(ctx context.Context, uid, token, purpose string) (User, error) {
	invalid := func(err error) error {
		return core.NewValidationError(err, core.FieldError{Field: "token", Error: err.Error()})
	}

	id, err := decodeUID(uid)
	if err != nil {
		return User{}, invalid(errInvalidToken)
	}
	usr, err := svc.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return User{}, invalid(errInvalidToken)
		}
		return User{}, errors.Wrap(err, "finding user by ID")
	}
	if err = svc.tokenGen.verifyToken(usr, purpose, token); err != nil {
		return User{}, invalid(err)
	}
	return usr, nil
}

// Emails

type tokenMailData struct {
	Name  string
	UID   string
	Token string
}

func (svc *service) sendTokenMail(usr User, purpose, subject, tmpl string) error {
	token, err := svc.tokenGen.MakeToken(usr, purpose)
	if err != nil {
		return errors.Wrap(err, "making token")
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: usr.Name, Address: usr.Email}},
		Subject:      subject,
		TemplateName: tmpl,
		TemplateData: tokenMailData{Name: usr.Name, UID: EncodeUID(usr), Token: token},
	})
	return nil
}

func (svc *service) SendUpgradeReceipt(usr User) {
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: usr.Name, Address: usr.Email}},
		Subject:      "Welcome to the full journey",
		TemplateName: "upgrade_receipt",
		TemplateData: struct{ Name string }{Name: usr.Name},
	})
}

// SendGoodbye confirms the deletion of an account, attaching the last export of their journey when there is one.
func (svc *service) SendGoodbye(usr User, export []byte) {
	msg := &core.EmailMessage{
		To:           []mail.Address{{Name: usr.Name, Address: usr.Email}},
		Subject:      "Your account has been deleted",
		TemplateName: "goodbye",
	}
	hasExport := len(export) > 0
	if hasExport {
		if err := msg.Attach(bytes.NewReader(export), "daily-sutra-journey.json", "application/json"); err != nil {
			hasExport = false
		}
	}
	msg.TemplateData = struct {
		Name      string
		HasExport bool
	}{Name: usr.Name, HasExport: hasExport}
	svc.mailSvc.SendMessages(msg)
}
