package services

import (
	"context"
	"fmt"

	"github.com/Dosada05/sports-portal/models"
	"github.com/Dosada05/sports-portal/repositories"
	"github.com/Dosada05/sports-portal/richtext"
)

type RuleInput struct {
	Title        string `json:"title" validate:"required,max=200"`
	Description  string `json:"description" validate:"required"`
	Sport        string `json:"sport" validate:"required,max=60"`
	Category     string `json:"category" validate:"omitempty,max=60"`
	DisplayOrder int    `json:"display_order" validate:"gte=0"`
}

type RulePreview struct {
	HTML   string           `json:"html"`
	Blocks []richtext.Block `json:"blocks"`
}

type RuleService interface {
	Create(ctx context.Context, input RuleInput) (*models.Rule, error)
	GetByID(ctx context.Context, id int) (*models.Rule, error)
	List(ctx context.Context, filter models.ListFilter) (*models.ListResult[models.Rule], error)
	Update(ctx context.Context, id int, input RuleInput) (*models.Rule, error)
	Delete(ctx context.Context, id int) error
	Preview(text string) *RulePreview
}

type ruleService struct {
	ruleRepo repositories.RuleRepository
}

func NewRuleService(ruleRepo repositories.RuleRepository) RuleService {
	return &ruleService{ruleRepo: ruleRepo}
}

var ruleErrors = errMapping{
	{repositories.ErrRuleNotFound, ErrRuleNotFound},
}

func renderRule(rule *models.Rule) {
	rule.DescriptionHTML = richtext.RenderHTML(rule.Description)
}

func ruleFromInput(input RuleInput) *models.Rule {
	return &models.Rule{
		Title:        input.Title,
		Description:  input.Description,
		Sport:        input.Sport,
		Category:     input.Category,
		DisplayOrder: input.DisplayOrder,
	}
}

func (s *ruleService) Create(ctx context.Context, input RuleInput) (*models.Rule, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}
	rule := ruleFromInput(input)
	if err := s.ruleRepo.Create(ctx, rule); err != nil {
		return nil, fmt.Errorf("failed to create rule: %w", err)
	}
	renderRule(rule)
	return rule, nil
}

func (s *ruleService) GetByID(ctx context.Context, id int) (*models.Rule, error) {
	rule, err := s.ruleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ruleErrors.translate(err, "get rule %d", id)
	}
	renderRule(rule)
	return rule, nil
}

func (s *ruleService) List(ctx context.Context, filter models.ListFilter) (*models.ListResult[models.Rule], error) {
	filter = normalizePaging(filter)
	rules, total, err := s.ruleRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list rules: %w", err)
	}
	for i := range rules {
		renderRule(&rules[i])
	}
	return newListResult(rules, total, filter), nil
}

func (s *ruleService) Update(ctx context.Context, id int, input RuleInput) (*models.Rule, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}
	rule := ruleFromInput(input)
	rule.ID = id
	if err := s.ruleRepo.Update(ctx, rule); err != nil {
		return nil, ruleErrors.translate(err, "update rule %d", id)
	}
	renderRule(rule)
	return rule, nil
}

func (s *ruleService) Delete(ctx context.Context, id int) error {
	if err := s.ruleRepo.Delete(ctx, id); err != nil {
		return ruleErrors.translate(err, "delete rule %d", id)
	}
	return nil
}

func (s *ruleService) Preview(text string) *RulePreview {
	return &RulePreview{HTML: richtext.RenderHTML(text), Blocks: richtext.Parse(text)}
}
