// Package mirror forwards newly submitted applications to an external
// spreadsheet for offline reporting. Delivery is strictly best-effort: the
// submission is already durable before a row is forwarded, and no failure
// here ever reaches the submitter.
package mirror

import (
	"context"
	"strings"
	"time"

	"edintake/internal/entity"

	"github.com/sirupsen/logrus"
)

// Sink appends one flattened application row to an external target.
type Sink interface {
	Forward(ctx context.Context, application *entity.DbApplication) error
}

const (
	forwardAttempts = 3
	backoffBase     = 2 * time.Second
)

// Forwarder delivers rows asynchronously with a small capped retry. All
// outcomes are absorbed at this boundary.
type Forwarder struct {
	sink    Sink
	timeout time.Duration
}

// NewForwarder wraps a sink. A nil sink disables forwarding entirely.
func NewForwarder(sink Sink, timeout time.Duration) *Forwarder {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Forwarder{sink: sink, timeout: timeout}
}

// ForwardAsync hands the persisted record to a delivery goroutine and
// returns immediately. Must only be called after the local commit.
func (f *Forwarder) ForwardAsync(application *entity.DbApplication) {
	if f == nil || application == nil {
		return
	}
	if f.sink == nil {
		logrus.WithField("application_id", application.ID).Debug("mirror sink disabled, skipping forward")
		return
	}
	record := *application
	go f.deliver(&record)
}

func (f *Forwarder) deliver(application *entity.DbApplication) {
	logger := logrus.WithField("application_id", application.ID)

	for attempt := 1; attempt <= forwardAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
		err := f.sink.Forward(ctx, application)
		cancel()

		if err == nil {
			logger.WithField("attempt", attempt).Info("mirrored application row")
			return
		}

		logger.WithError(err).WithField("attempt", attempt).Warn("failed to mirror application row")
		if attempt < forwardAttempts {
			time.Sleep(backoffBase * time.Duration(attempt))
		}
	}

	logger.Error("giving up on mirroring application row")
}

// RowValues flattens an application into the spreadsheet row layout. The
// mirrored copy carries derived formatting the store never holds: joined
// names, a combined location string, and the employee total.
func RowValues(a *entity.DbApplication) []interface{} {
	location := strings.Join([]string{a.Region, a.Zone, a.Woreda, a.Kebele}, "/")

	return []interface{}{
		a.ID,
		a.CollectorEmail,
		a.CollectionDate.Format("2006-01-02 15:04:05"),
		location,
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
		a.OwnersCount,
		a.OwnersNames,
		a.RegisteredAddress,
		a.BusinessPremise,
		a.MaleEmployees,
		a.FemaleEmployees,
		a.TotalEmployees(),
		a.Capital,
		a.MonthlyRevenue,
		a.AnnualRevenue,
		a.NetProfit,
		a.RequestedAmount,
		a.Purpose,
		a.RepaymentSource,
		a.GuaranterFullName(),
		a.GuaranterPhone,
		a.GuaranterSalary,
		a.CbeAccount,
		a.BranchName,
		a.City,
		a.FinanceMode,
		a.Status,
	}
}
