package authz

import (
	"context"
	"fmt"
	"sync"

	"github.com/casbin/casbin/v2"
	fileadapter "github.com/casbin/casbin/v2/persist/file-adapter"
	"github.com/sirupsen/logrus"

	"github.com/fonction-publique/sigrh/pkg/configuration"
	"github.com/fonction-publique/sigrh/pkg/serrors"
)

// Service provides helpers for enforcing authorization decisions.
type Service struct {
	mode     Mode
	enforcer *casbin.Enforcer
	logger   *logrus.Entry
	mu       sync.RWMutex
}

// NewService constructs a Service from model/policy files.
func NewService(modelPath, policyPath string, mode Mode, logger *logrus.Logger) (*Service, error) {
	var entry *logrus.Entry
	if logger != nil {
		entry = logger.WithField("component", "authz")
	} else {
		entry = logrus.WithField("component", "authz")
	}

	enf, err := casbin.NewEnforcer(modelPath, fileadapter.NewAdapter(policyPath))
	if err != nil {
		return nil, fmt.Errorf("authz: failed to initialize enforcer: %w", err)
	}
	if err := enf.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("authz: failed to load policies: %w", err)
	}

	return &Service{
		mode:     mode,
		enforcer: enf,
		logger:   entry,
	}, nil
}

// Authorize returns an error if the request is denied.
func (s *Service) Authorize(ctx context.Context, req Request) error {
	switch s.mode {
	case ModeDisabled:
		return nil
	case ModeShadow:
		allowed, err := s.Check(ctx, req)
		if err != nil {
			return err
		}
		if !allowed {
			s.logger.WithContext(ctx).WithFields(logrus.Fields{
				"subject": req.Subject,
				"object":  req.Object,
				"action":  req.Action,
				"mode":    ModeShadow,
			}).Warn("authz shadow deny")
		}
		return nil
	default:
		allowed, err := s.Check(ctx, req)
		if err != nil {
			return err
		}
		if !allowed {
			s.logger.WithContext(ctx).WithFields(logrus.Fields{
				"subject": req.Subject,
				"object":  req.Object,
				"action":  req.Action,
				"mode":    ModeEnforce,
			}).Warn("authz denied request")
			return forbiddenError(req)
		}
		return nil
	}
}

// Check evaluates a request without returning an authorization error.
func (s *Service) Check(ctx context.Context, req Request) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res, err := s.enforcer.Enforce(req.Subject, req.Object, req.Action)
	if err != nil {
		return false, fmt.Errorf("authz: enforce failed: %w", err)
	}
	return res, nil
}

// ReloadPolicy reloads policy data from disk.
func (s *Service) ReloadPolicy(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.enforcer.LoadPolicy(); err != nil {
		return fmt.Errorf("authz: reload policy failed: %w", err)
	}
	s.logger.WithContext(ctx).Info("authz policy reloaded")
	return nil
}

func forbiddenError(req Request) error {
	return serrors.NewError(
		"AUTHZ_FORBIDDEN",
		fmt.Sprintf("subject %q may not %s %s", req.Subject, req.Action, req.Object),
		"Authorization.PermissionDenied",
	)
}

var (
	defaultServiceOnce sync.Once
	defaultService     *Service
	defaultServiceErr  error
)

// Use returns a singleton Service configured via environment variables.
func Use() *Service {
	defaultServiceOnce.Do(func() {
		conf := configuration.Use()
		defaultService, defaultServiceErr = NewService(
			conf.Authz.ModelPath,
			conf.Authz.PolicyPath,
			Mode(conf.Authz.Mode),
			conf.Logger(),
		)
	})
	if defaultServiceErr != nil {
		panic(defaultServiceErr)
	}
	return defaultService
}
