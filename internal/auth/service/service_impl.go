package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/smallbiznis/dashboard/internal/auth/domain"
	"github.com/smallbiznis/dashboard/internal/auth/password"
	"github.com/smallbiznis/dashboard/internal/form"
	"github.com/smallbiznis/dashboard/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log     *zap.Logger
	Repo    domain.Repository
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	log     *zap.Logger
	repo    domain.Repository
	metrics *metrics.Metrics

	// compared against when the email is unknown so both paths cost a hash check
	dummyHash string
}

func New(p Params) domain.Service {
	dummy, _ := password.Hash(uuid.NewString())
	return &Service{
		log:       p.Log.Named("auth.service"),
		repo:      p.Repo,
		metrics:   p.Metrics,
		dummyHash: dummy,
	}
}

func (s *Service) Authorize(ctx context.Context, email, plain string) (*domain.User, error) {
	creds, err := form.ParseCredentials(form.Fields{"email": email, "password": plain})
	if err != nil {
		return nil, nil
	}

	user, err := s.repo.FindByEmail(ctx, creds.Email)
	if errors.Is(err, domain.ErrUserNotFound) {
		password.Verify(creds.Password, s.dummyHash)
		return nil, nil
	}
	if err != nil {
		s.log.Error("Failed to fetch user", zap.Error(err))
		return nil, err
	}

	if !password.Verify(creds.Password, user.Password) {
		return nil, nil
	}
	return user, nil
}

func (s *Service) Authenticate(ctx context.Context, fields form.Fields) (*domain.User, string) {
	user, err := s.Authorize(ctx, fields.Get("email"), fields["password"])
	switch {
	case err != nil:
		s.metrics.RecordLogin(ctx, "error")
		return nil, domain.MessageSomethingWentWrong
	case user == nil:
		s.metrics.RecordLogin(ctx, "invalid")
		return nil, domain.MessageInvalidCredentials
	default:
		s.metrics.RecordLogin(ctx, "success")
		return user, ""
	}
}

func (s *Service) CreateUser(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	creds, err := form.ParseCredentials(form.Fields{"email": req.Email, "password": req.Password})
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	hashed, err := password.Hash(creds.Password)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name, _, _ = strings.Cut(creds.Email, "@")
	}

	user := &domain.User{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    strings.ToLower(creds.Email),
		Password: hashed,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
