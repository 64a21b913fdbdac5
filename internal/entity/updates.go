package entity

// ApplicationUpdates holds the sparse column overwrites the admin review
// workflow may apply. The key set in ToMap is the full allow-list; arbitrary
// column names from a request never reach the storage layer.
type ApplicationUpdates struct {
	Status *string

	Region *string
	Zone   *string
	Woreda *string
	Kebele *string
	Batch  *string
	EdiID  *string

	FirstName       *string
	FatherName      *string
	GrandfatherName *string
	Dob             *string
	Sex             *string
	Address         *string

	HasLicense      *string
	TradeLicenseNum *string
	TradeRegNum     *string
	TinNumber       *string
	LicenseDate     *string

	EnterpriseSize    *string
	OwnershipType     *string
	BusinessSector    *string
	OwnersCount       *int
	OwnersNames       *string
	RegisteredAddress *string
	BusinessPremise   *string

	MaleEmployees   *int
	FemaleEmployees *int

	Capital         *float64
	MonthlyRevenue  *float64
	AnnualRevenue   *float64
	NetProfit       *float64
	RequestedAmount *float64

	Purpose         *string
	RepaymentSource *string

	GuaranterFirstName       *string
	GuaranterFatherName      *string
	GuaranterGrandfatherName *string
	GuaranterPhone           *string
	GuaranterSalary          *float64

	CbeAccount  *string
	BranchName  *string
	City        *string
	FinanceMode *string
}

// ToMap converts set fields into a GORM updates map.
func (u ApplicationUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	setString := func(column string, value *string) {
		if value != nil {
			updates[column] = *value
		}
	}
	setInt := func(column string, value *int) {
		if value != nil {
			updates[column] = *value
		}
	}
	setFloat := func(column string, value *float64) {
		if value != nil {
			updates[column] = *value
		}
	}

	setString("status", u.Status)

	setString("region", u.Region)
	setString("zone", u.Zone)
	setString("woreda", u.Woreda)
	setString("kebele", u.Kebele)
	setString("batch", u.Batch)
	setString("edi_id", u.EdiID)

	setString("first_name", u.FirstName)
	setString("father_name", u.FatherName)
	setString("grandfather_name", u.GrandfatherName)
	setString("dob", u.Dob)
	setString("sex", u.Sex)
	setString("address", u.Address)

	setString("has_license", u.HasLicense)
	setString("trade_license_num", u.TradeLicenseNum)
	setString("trade_reg_num", u.TradeRegNum)
	setString("tin_number", u.TinNumber)
	setString("license_date", u.LicenseDate)

	setString("enterprise_size", u.EnterpriseSize)
	setString("ownership_type", u.OwnershipType)
	setString("business_sector", u.BusinessSector)
	setInt("owners_count", u.OwnersCount)
	setString("owners_names", u.OwnersNames)
	setString("registered_address", u.RegisteredAddress)
	setString("business_premise", u.BusinessPremise)

	setInt("male_employees", u.MaleEmployees)
	setInt("female_employees", u.FemaleEmployees)

	setFloat("capital", u.Capital)
	setFloat("monthly_revenue", u.MonthlyRevenue)
	setFloat("annual_revenue", u.AnnualRevenue)
	setFloat("net_profit", u.NetProfit)
	setFloat("requested_amount", u.RequestedAmount)

	setString("purpose", u.Purpose)
	setString("repayment_source", u.RepaymentSource)

	setString("guaranter_first_name", u.GuaranterFirstName)
	setString("guaranter_father_name", u.GuaranterFatherName)
	setString("guaranter_grandfather_name", u.GuaranterGrandfatherName)
	setString("guaranter_phone", u.GuaranterPhone)
	setFloat("guaranter_salary", u.GuaranterSalary)

	setString("cbe_account", u.CbeAccount)
	setString("branch_name", u.BranchName)
	setString("city", u.City)
	setString("finance_mode", u.FinanceMode)

	return updates
}

// IsEmpty reports whether no update field is set.
func (u ApplicationUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}

// ToUpdates maps the admin request onto the typed updates struct.
func (r ApplicationUpdateRequest) ToUpdates() ApplicationUpdates {
	return ApplicationUpdates{
		Status: r.Status,

		Region: r.Region,
		Zone:   r.Zone,
		Woreda: r.Woreda,
		Kebele: r.Kebele,
		Batch:  r.Batch,
		EdiID:  r.EdiID,

		FirstName:       r.FirstName,
		FatherName:      r.FatherName,
		GrandfatherName: r.GrandfatherName,
		Dob:             r.Dob,
		Sex:             r.Sex,
		Address:         r.Address,

		HasLicense:      r.HasLicense,
		TradeLicenseNum: r.TradeLicenseNum,
		TradeRegNum:     r.TradeRegNum,
		TinNumber:       r.TinNumber,
		LicenseDate:     r.LicenseDate,

		EnterpriseSize:    r.EnterpriseSize,
		OwnershipType:     r.OwnershipType,
		BusinessSector:    r.BusinessSector,
		OwnersCount:       r.OwnersCount,
		OwnersNames:       r.OwnersNames,
		RegisteredAddress: r.RegisteredAddress,
		BusinessPremise:   r.BusinessPremise,

		MaleEmployees:   r.MaleEmployees,
		FemaleEmployees: r.FemaleEmployees,

		Capital:         r.Capital,
		MonthlyRevenue:  r.MonthlyRevenue,
		AnnualRevenue:   r.AnnualRevenue,
		NetProfit:       r.NetProfit,
		RequestedAmount: r.RequestedAmount,

		Purpose:         r.Purpose,
		RepaymentSource: r.RepaymentSource,

		GuaranterFirstName:       r.GuaranterFirstName,
		GuaranterFatherName:      r.GuaranterFatherName,
		GuaranterGrandfatherName: r.GuaranterGrandfatherName,
		GuaranterPhone:           r.GuaranterPhone,
		GuaranterSalary:          r.GuaranterSalary,

		CbeAccount:  r.CbeAccount,
		BranchName:  r.BranchName,
		City:        r.City,
		FinanceMode: r.FinanceMode,
	}
}
