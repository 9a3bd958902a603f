// Package services contains application services for the dataflow client.
// Every call goes through the shared gateway and therefore carries the
// session's bearer token.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/dataflow/internal/client/client"
	"github.com/dmitrijs2005/dataflow/internal/client/models"
	"github.com/dmitrijs2005/dataflow/internal/common"
)

// AccountService reads and creates data-forwarding accounts.
type AccountService interface {
	List(ctx context.Context) ([]models.Account, error)
	Create(ctx context.Context, name, website string) (*models.Account, error)
	Get(ctx context.Context, id string) (*models.Account, error)
	Statistics(ctx context.Context, id string) (*models.Statistics, error)
}

type accountService struct {
	client client.Client
}

func NewAccountService(c client.Client) AccountService {
	return &accountService{client: c}
}

func (s *accountService) List(ctx context.Context) ([]models.Account, error) {
	var out []models.Account
	if err := s.client.Do(ctx, http.MethodGet, "/api/accounts", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Account{}
	}
	return out, nil
}

func (s *accountService) Create(ctx context.Context, name, website string) (*models.Account, error) {
	in := models.NewAccount{
		AccountName: strings.TrimSpace(name),
		Website:     strings.TrimSpace(website),
	}
	if err := validateNewAccount(in); err != nil {
		return nil, err
	}

	var out models.Account
	if err := s.client.Do(ctx, http.MethodPost, "/api/accounts", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *accountService) Get(ctx context.Context, id string) (*models.Account, error) {
	p, err := accountPath(id)
	if err != nil {
		return nil, err
	}

	var out models.Account
	if err := s.client.Do(ctx, http.MethodGet, p, nil, &out); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("account %s: %w", id, common.ErrorNotFound)
		}
		return nil, err
	}
	return &out, nil
}

func (s *accountService) Statistics(ctx context.Context, id string) (*models.Statistics, error) {
	p, err := accountPath(id)
	if err != nil {
		return nil, err
	}

	var out models.Statistics
	if err := s.client.Do(ctx, http.MethodGet, p+"/logs/statistics", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func accountPath(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("%w: account id is required", common.ErrorValidation)
	}
	return "/api/accounts/" + url.PathEscape(id), nil
}

func validateNewAccount(in models.NewAccount) error {
	if in.AccountName == "" {
		return fmt.Errorf("%w: account name is required", common.ErrorValidation)
	}
	if in.Website == "" {
		return fmt.Errorf("%w: website is required", common.ErrorValidation)
	}
	u, err := url.Parse(in.Website)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: website must be an http(s) URL", common.ErrorValidation)
	}
	return nil
}
