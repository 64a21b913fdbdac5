package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"edintake/internal/entity"
	"edintake/internal/mirror"
	"edintake/internal/model"

	"github.com/google/uuid"
)

// SubmissionService runs the intake workflow: coerce the validated form into
// a record, persist it, then hand it to the mirror forwarder. Persistence is
// the durability boundary; mirroring happens after and cannot fail the
// submission.
type SubmissionService struct {
	repo      model.Repository
	forwarder *mirror.Forwarder

	now   func() time.Time
	newID func() string
}

// NewSubmissionService creates the submission workflow service.
func NewSubmissionService(repo model.Repository, forwarder *mirror.Forwarder) *SubmissionService {
	return &SubmissionService{
		repo:      repo,
		forwarder: forwarder,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Submit persists one application for the authenticated collector. The
// collector identity always comes from the session, never from the payload.
func (s *SubmissionService) Submit(ctx context.Context, collectorEmail string, req *entity.ApplicationSubmitRequest) (*entity.DbApplication, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("submission service not initialised")
	}
	if req == nil {
		return nil, fmt.Errorf("submit request is nil")
	}
	collectorEmail = strings.ToLower(strings.TrimSpace(collectorEmail))
	if collectorEmail == "" {
		return nil, fmt.Errorf("collector email is empty")
	}

	application := buildApplication(req)
	application.ID = s.newID()
	application.CollectorEmail = collectorEmail
	application.CollectionDate = s.now().UTC()
	application.Status = entity.StatusPending

	if err := s.repo.CreateApplication(ctx, application); err != nil {
		return nil, fmt.Errorf("persist application: %w", err)
	}

	// Best-effort, after the commit. Never inspected.
	s.forwarder.ForwardAsync(application)

	return application, nil
}

func buildApplication(req *entity.ApplicationSubmitRequest) *entity.DbApplication {
	return &entity.DbApplication{
		Region: strings.TrimSpace(req.Region),
		Zone:   strings.TrimSpace(req.Zone),
		Woreda: strings.TrimSpace(req.Woreda),
		Kebele: strings.TrimSpace(req.Kebele),
		Batch:  strings.TrimSpace(req.Batch),
		EdiID:  strings.TrimSpace(req.EdiID),

		FirstName:       strings.TrimSpace(req.FirstName),
		FatherName:      strings.TrimSpace(req.FatherName),
		GrandfatherName: strings.TrimSpace(req.GrandfatherName),
		Dob:             strings.TrimSpace(req.Dob),
		Sex:             req.Sex,
		Address:         strings.TrimSpace(req.Address),

		HasLicense:      req.HasLicense,
		TradeLicenseNum: strings.TrimSpace(req.TradeLicenseNum),
		TradeRegNum:     strings.TrimSpace(req.TradeRegNum),
		TinNumber:       strings.TrimSpace(req.TinNumber),
		LicenseDate:     strings.TrimSpace(req.LicenseDate),

		EnterpriseSize:    req.EnterpriseSize,
		OwnershipType:     req.OwnershipType,
		BusinessSector:    req.BusinessSector,
		OwnersCount:       *req.OwnersCount,
		OwnersNames:       strings.TrimSpace(req.OwnersNames),
		RegisteredAddress: strings.TrimSpace(req.RegisteredAddress),
		BusinessPremise:   req.BusinessPremise,

		MaleEmployees:   *req.MaleEmployees,
		FemaleEmployees: *req.FemaleEmployees,

		Capital:         *req.Capital,
		MonthlyRevenue:  *req.MonthlyRevenue,
		AnnualRevenue:   *req.AnnualRevenue,
		NetProfit:       *req.NetProfit,
		RequestedAmount: *req.RequestedAmount,

		Purpose:         strings.TrimSpace(req.Purpose),
		RepaymentSource: strings.TrimSpace(req.RepaymentSource),

		GuaranterFirstName:       strings.TrimSpace(req.GuaranterFirstName),
		GuaranterFatherName:      strings.TrimSpace(req.GuaranterFatherName),
		GuaranterGrandfatherName: strings.TrimSpace(req.GuaranterGrandfatherName),
		GuaranterPhone:           strings.TrimSpace(req.GuaranterPhone),
		GuaranterSalary:          *req.GuaranterSalary,

		CbeAccount:  strings.TrimSpace(req.CbeAccount),
		BranchName:  strings.TrimSpace(req.BranchName),
		City:        strings.TrimSpace(req.City),
		FinanceMode: req.FinanceMode,
	}
}
