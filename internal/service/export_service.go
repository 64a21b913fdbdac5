package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"edintake/internal/entity"
	"edintake/internal/model"
	"edintake/internal/storage"

	"github.com/sirupsen/logrus"
)

// csvHeader is the fixed human-labeled header row. "Full Name" and "Total
// Employees" are derived at export time and never stored.
var csvHeader = []string{
	"Application ID",
	"Collector Email",
	"Collection Date",
	"Region",
	"Zone",
	"Woreda",
	"Kebele",
	"Batch",
	"EDI ID",
	"Full Name",
	"Date of Birth",
	"Sex",
	"Address",
	"Has License",
	"Trade License No",
	"Trade Registration No",
	"TIN Number",
	"License Date",
	"Enterprise Size",
	"Ownership Type",
	"Business Sector",
	"Owners Count",
	"Owners Names",
	"Registered Address",
	"Business Premise",
	"Male Employees",
	"Female Employees",
	"Total Employees",
	"Capital",
	"Monthly Revenue",
	"Annual Revenue",
	"Net Profit",
	"Requested Amount",
	"Purpose",
	"Repayment Source",
	"Guarantor Full Name",
	"Guarantor Phone",
	"Guarantor Salary",
	"CBE Account",
	"Branch Name",
	"City",
	"Finance Mode",
	"Status",
}

// ExportService builds the admin CSV export and archives a snapshot of each
// export through the configured storage backend.
type ExportService struct {
	repo    model.Repository
	archive storage.Archive
}

// NewExportService creates the export service. A nil archive disables
// snapshotting.
func NewExportService(repo model.Repository, archive storage.Archive) *ExportService {
	return &ExportService{repo: repo, archive: archive}
}

// ExportCSV renders every application as CSV and returns the bytes together
// with a suggested download filename.
func (s *ExportService) ExportCSV(ctx context.Context) ([]byte, string, error) {
	if s == nil || s.repo == nil {
		return nil, "", fmt.Errorf("export service not initialised")
	}

	applications, err := s.repo.ListApplications(ctx, nil)
	if err != nil {
		return nil, "", fmt.Errorf("list applications: %w", err)
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(csvHeader); err != nil {
		return nil, "", fmt.Errorf("write header: %w", err)
	}
	for idx := range applications {
		if err := writer.Write(csvRow(&applications[idx])); err != nil {
			return nil, "", fmt.Errorf("write row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, "", fmt.Errorf("flush csv: %w", err)
	}

	name := fmt.Sprintf("applications-%s", time.Now().UTC().Format("20060102-150405"))
	data := buf.Bytes()

	s.archiveSnapshot(ctx, name, data)

	return data, name + ".csv", nil
}

// archiveSnapshot keeps a copy of the export, best-effort.
func (s *ExportService) archiveSnapshot(ctx context.Context, name string, data []byte) {
	if s.archive == nil {
		return
	}
	key, err := s.archive.Save(ctx, name, data)
	if err != nil {
		logrus.WithError(err).Warn("failed to archive export snapshot")
		return
	}
	logrus.WithField("key", key).Info("archived export snapshot")
}

func csvRow(a *entity.DbApplication) []string {
	return []string{
		a.ID,
		a.CollectorEmail,
		a.CollectionDate.Format("2006-01-02 15:04:05"),
		a.Region,
		a.Zone,
		a.Woreda,
		a.Kebele,
		a.Batch,
		a.EdiID,
		a.FullName(),
		a.Dob,
		a.Sex,
		a.Address,
		a.HasLicense,
		a.TradeLicenseNum,
		a.TradeRegNum,
		a.TinNumber,
		a.LicenseDate,
		a.EnterpriseSize,
		a.OwnershipType,
		a.BusinessSector,
		strconv.Itoa(a.OwnersCount),
		a.OwnersNames,
		a.RegisteredAddress,
		a.BusinessPremise,
		strconv.Itoa(a.MaleEmployees),
		strconv.Itoa(a.FemaleEmployees),
		strconv.Itoa(a.TotalEmployees()),
		formatAmount(a.Capital),
		formatAmount(a.MonthlyRevenue),
		formatAmount(a.AnnualRevenue),
		formatAmount(a.NetProfit),
		formatAmount(a.RequestedAmount),
		a.Purpose,
		a.RepaymentSource,
		a.GuaranterFullName(),
		a.GuaranterPhone,
		formatAmount(a.GuaranterSalary),
		a.CbeAccount,
		a.BranchName,
		a.City,
		a.FinanceMode,
		a.Status,
	}
}

func formatAmount(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}
