package entity

import "time"

// StatusPending is the workflow state every application starts in. Status is
// free text beyond that; admins move records through their own review states.
const StatusPending = "Pending"

// Dropdown enumerations for the intake form. The same sets back the binding
// validation on submit and update payloads.
var (
	SexOptions            = []string{"M", "F"}
	LicenseOptions        = []string{"Yes", "No"}
	EnterpriseSizeOptions = []string{"Micro", "Small", "Medium", "Startup"}
	OwnershipTypeOptions  = []string{"Sole Proprietorship", "Partnership", "PLC"}
	BusinessSectorOptions = []string{"Manufacturing", "Construction", "Agriculture", "Mining", "Service", "Other"}
	PremiseOptions        = []string{"Rented", "Applicant Owned", "Government"}
	FinanceModeOptions    = []string{"Conventional", "IFB"}
)

// DbApplication is one EDI loan/business-registration application. The id,
// collector and collection date are fixed at submission; everything else can
// be corrected through the admin review workflow.
type DbApplication struct {
	ID             string    `gorm:"column:id;type:varchar(36);primarykey" json:"id"`
	CollectorEmail string    `gorm:"column:collector_email;type:varchar(255);index;not null" json:"collector_email"`
	CollectionDate time.Time `gorm:"column:collection_date;not null;index" json:"collection_date"`

	// Location
	Region string `gorm:"column:region;type:varchar(255);not null" json:"region"`
	Zone   string `gorm:"column:zone;type:varchar(255);not null" json:"zone"`
	Woreda string `gorm:"column:woreda;type:varchar(255);not null" json:"woreda"`
	Kebele string `gorm:"column:kebele;type:varchar(255);not null" json:"kebele"`
	Batch  string `gorm:"column:batch;type:varchar(255);not null" json:"batch"`
	EdiID  string `gorm:"column:edi_id;type:varchar(255)" json:"edi_id"`

	// Applicant
	FirstName       string `gorm:"column:first_name;type:varchar(255);not null" json:"first_name"`
	FatherName      string `gorm:"column:father_name;type:varchar(255);not null" json:"father_name"`
	GrandfatherName string `gorm:"column:grandfather_name;type:varchar(255);not null" json:"grandfather_name"`
	Dob             string `gorm:"column:dob;type:varchar(64);not null" json:"dob"`
	Sex             string `gorm:"column:sex;type:varchar(1);not null" json:"sex"`
	Address         string `gorm:"column:address;type:varchar(255);not null" json:"address"`

	// Business license, optional details when HasLicense is "No"
	HasLicense      string `gorm:"column:has_license;type:varchar(3);not null" json:"has_license"`
	TradeLicenseNum string `gorm:"column:trade_license_num;type:varchar(255)" json:"trade_license_num"`
	TradeRegNum     string `gorm:"column:trade_reg_num;type:varchar(255)" json:"trade_reg_num"`
	TinNumber       string `gorm:"column:tin_number;type:varchar(255)" json:"tin_number"`
	LicenseDate     string `gorm:"column:license_date;type:varchar(64)" json:"license_date"`

	// Business profile
	EnterpriseSize    string `gorm:"column:enterprise_size;type:varchar(32);not null" json:"enterprise_size"`
	OwnershipType     string `gorm:"column:ownership_type;type:varchar(64);not null" json:"ownership_type"`
	BusinessSector    string `gorm:"column:business_sector;type:varchar(64);not null" json:"business_sector"`
	OwnersCount       int    `gorm:"column:owners_count;not null" json:"owners_count"`
	OwnersNames       string `gorm:"column:owners_names;type:text;not null" json:"owners_names"`
	RegisteredAddress string `gorm:"column:registered_address;type:varchar(255);not null" json:"registered_address"`
	BusinessPremise   string `gorm:"column:business_premise;type:varchar(32);not null" json:"business_premise"`

	// Employment
	MaleEmployees   int `gorm:"column:male_employees;not null" json:"male_employees"`
	FemaleEmployees int `gorm:"column:female_employees;not null" json:"female_employees"`

	// Financials
	Capital         float64 `gorm:"column:capital;not null" json:"capital"`
	MonthlyRevenue  float64 `gorm:"column:monthly_revenue;not null" json:"monthly_revenue"`
	AnnualRevenue   float64 `gorm:"column:annual_revenue;not null" json:"annual_revenue"`
	NetProfit       float64 `gorm:"column:net_profit;not null" json:"net_profit"`
	RequestedAmount float64 `gorm:"column:requested_amount;not null" json:"requested_amount"`

	// Loan
	Purpose         string `gorm:"column:purpose;type:text;not null" json:"purpose"`
	RepaymentSource string `gorm:"column:repayment_source;type:text;not null" json:"repayment_source"`

	// Guarantor
	GuaranterFirstName       string  `gorm:"column:guaranter_first_name;type:varchar(255);not null" json:"guaranter_first_name"`
	GuaranterFatherName      string  `gorm:"column:guaranter_father_name;type:varchar(255);not null" json:"guaranter_father_name"`
	GuaranterGrandfatherName string  `gorm:"column:guaranter_grandfather_name;type:varchar(255);not null" json:"guaranter_grandfather_name"`
	GuaranterPhone           string  `gorm:"column:guaranter_phone;type:varchar(64);not null" json:"guaranter_phone"`
	GuaranterSalary          float64 `gorm:"column:guaranter_salary;not null" json:"guaranter_salary"`

	// Banking
	CbeAccount  string `gorm:"column:cbe_account;type:varchar(64);not null" json:"cbe_account"`
	BranchName  string `gorm:"column:branch_name;type:varchar(255);not null" json:"branch_name"`
	City        string `gorm:"column:city;type:varchar(255);not null" json:"city"`
	FinanceMode string `gorm:"column:finance_mode;type:varchar(32);not null" json:"finance_mode"`

	Status string `gorm:"column:status;type:varchar(64);not null;default:Pending" json:"status"`
}

// TableName overrides default pluralised name.
func (DbApplication) TableName() string {
	return "applications"
}

// FullName joins the applicant name parts the way the export and mirror
// surfaces present them. Never stored.
func (a *DbApplication) FullName() string {
	return a.FirstName + " " + a.FatherName + " " + a.GrandfatherName
}

// GuaranterFullName joins the guarantor name parts.
func (a *DbApplication) GuaranterFullName() string {
	return a.GuaranterFirstName + " " + a.GuaranterFatherName + " " + a.GuaranterGrandfatherName
}

// TotalEmployees is derived at export/mirror time, never stored.
func (a *DbApplication) TotalEmployees() int {
	return a.MaleEmployees + a.FemaleEmployees
}

// ApplicationSubmitRequest carries every intake form field. Numeric fields
// are pointers so required catches a missing value without rejecting a
// legitimate zero.
type ApplicationSubmitRequest struct {
	Region string `json:"region" form:"region" binding:"required"`
	Zone   string `json:"zone" form:"zone" binding:"required"`
	Woreda string `json:"woreda" form:"woreda" binding:"required"`
	Kebele string `json:"kebele" form:"kebele" binding:"required"`
	Batch  string `json:"batch" form:"batch" binding:"required"`
	EdiID  string `json:"edi_id" form:"edi_id"`

	FirstName       string `json:"first_name" form:"first_name" binding:"required"`
	FatherName      string `json:"father_name" form:"father_name" binding:"required"`
	GrandfatherName string `json:"grandfather_name" form:"grandfather_name" binding:"required"`
	Dob             string `json:"dob" form:"dob" binding:"required"`
	Sex             string `json:"sex" form:"sex" binding:"required,oneof=M F"`
	Address         string `json:"address" form:"address" binding:"required"`

	HasLicense      string `json:"has_license" form:"has_license" binding:"required,oneof=Yes No"`
	TradeLicenseNum string `json:"trade_license_num" form:"trade_license_num"`
	TradeRegNum     string `json:"trade_reg_num" form:"trade_reg_num"`
	TinNumber       string `json:"tin_number" form:"tin_number"`
	LicenseDate     string `json:"license_date" form:"license_date"`

	EnterpriseSize    string `json:"enterprise_size" form:"enterprise_size" binding:"required,oneof=Micro Small Medium Startup"`
	OwnershipType     string `json:"ownership_type" form:"ownership_type" binding:"required,oneof='Sole Proprietorship' Partnership PLC"`
	BusinessSector    string `json:"business_sector" form:"business_sector" binding:"required,oneof=Manufacturing Construction Agriculture Mining Service Other"`
	OwnersCount       *int   `json:"owners_count" form:"owners_count" binding:"required,gte=0"`
	OwnersNames       string `json:"owners_names" form:"owners_names" binding:"required"`
	RegisteredAddress string `json:"registered_address" form:"registered_address" binding:"required"`
	BusinessPremise   string `json:"business_premise" form:"business_premise" binding:"required,oneof=Rented 'Applicant Owned' Government"`

	MaleEmployees   *int `json:"male_employees" form:"male_employees" binding:"required,gte=0"`
	FemaleEmployees *int `json:"female_employees" form:"female_employees" binding:"required,gte=0"`

	Capital         *float64 `json:"capital" form:"capital" binding:"required,gte=0"`
	MonthlyRevenue  *float64 `json:"monthly_revenue" form:"monthly_revenue" binding:"required,gte=0"`
	AnnualRevenue   *float64 `json:"annual_revenue" form:"annual_revenue" binding:"required,gte=0"`
	NetProfit       *float64 `json:"net_profit" form:"net_profit" binding:"required,gte=0"`
	RequestedAmount *float64 `json:"requested_amount" form:"requested_amount" binding:"required,gte=0"`

	Purpose         string `json:"purpose" form:"purpose" binding:"required"`
	RepaymentSource string `json:"repayment_source" form:"repayment_source" binding:"required"`

	GuaranterFirstName       string   `json:"guaranter_first_name" form:"guaranter_first_name" binding:"required"`
	GuaranterFatherName      string   `json:"guaranter_father_name" form:"guaranter_father_name" binding:"required"`
	GuaranterGrandfatherName string   `json:"guaranter_grandfather_name" form:"guaranter_grandfather_name" binding:"required"`
	GuaranterPhone           string   `json:"guaranter_phone" form:"guaranter_phone" binding:"required"`
	GuaranterSalary          *float64 `json:"guaranter_salary" form:"guaranter_salary" binding:"required,gte=0"`

	CbeAccount  string `json:"cbe_account" form:"cbe_account" binding:"required"`
	BranchName  string `json:"branch_name" form:"branch_name" binding:"required"`
	City        string `json:"city" form:"city" binding:"required"`
	FinanceMode string `json:"finance_mode" form:"finance_mode" binding:"required,oneof=Conventional IFB"`
}

// ApplicationUpdateRequest is the sparse admin correction payload. Only the
// fields listed here can ever be overwritten; identity, collector, and
// collection date are immutable.
type ApplicationUpdateRequest struct {
	Status *string `json:"status,omitempty"`

	Region *string `json:"region,omitempty"`
	Zone   *string `json:"zone,omitempty"`
	Woreda *string `json:"woreda,omitempty"`
	Kebele *string `json:"kebele,omitempty"`
	Batch  *string `json:"batch,omitempty"`
	EdiID  *string `json:"edi_id,omitempty"`

	FirstName       *string `json:"first_name,omitempty"`
	FatherName      *string `json:"father_name,omitempty"`
	GrandfatherName *string `json:"grandfather_name,omitempty"`
	Dob             *string `json:"dob,omitempty"`
	Sex             *string `json:"sex,omitempty" binding:"omitempty,oneof=M F"`
	Address         *string `json:"address,omitempty"`

	HasLicense      *string `json:"has_license,omitempty" binding:"omitempty,oneof=Yes No"`
	TradeLicenseNum *string `json:"trade_license_num,omitempty"`
	TradeRegNum     *string `json:"trade_reg_num,omitempty"`
	TinNumber       *string `json:"tin_number,omitempty"`
	LicenseDate     *string `json:"license_date,omitempty"`

	EnterpriseSize    *string `json:"enterprise_size,omitempty" binding:"omitempty,oneof=Micro Small Medium Startup"`
	OwnershipType     *string `json:"ownership_type,omitempty" binding:"omitempty,oneof='Sole Proprietorship' Partnership PLC"`
	BusinessSector    *string `json:"business_sector,omitempty" binding:"omitempty,oneof=Manufacturing Construction Agriculture Mining Service Other"`
	OwnersCount       *int    `json:"owners_count,omitempty" binding:"omitempty,gte=0"`
	OwnersNames       *string `json:"owners_names,omitempty"`
	RegisteredAddress *string `json:"registered_address,omitempty"`
	BusinessPremise   *string `json:"business_premise,omitempty" binding:"omitempty,oneof=Rented 'Applicant Owned' Government"`

	MaleEmployees   *int `json:"male_employees,omitempty" binding:"omitempty,gte=0"`
	FemaleEmployees *int `json:"female_employees,omitempty" binding:"omitempty,gte=0"`

	Capital         *float64 `json:"capital,omitempty" binding:"omitempty,gte=0"`
	MonthlyRevenue  *float64 `json:"monthly_revenue,omitempty" binding:"omitempty,gte=0"`
	AnnualRevenue   *float64 `json:"annual_revenue,omitempty" binding:"omitempty,gte=0"`
	NetProfit       *float64 `json:"net_profit,omitempty" binding:"omitempty,gte=0"`
	RequestedAmount *float64 `json:"requested_amount,omitempty" binding:"omitempty,gte=0"`

	Purpose         *string `json:"purpose,omitempty"`
	RepaymentSource *string `json:"repayment_source,omitempty"`

	GuaranterFirstName       *string  `json:"guaranter_first_name,omitempty"`
	GuaranterFatherName      *string  `json:"guaranter_father_name,omitempty"`
	GuaranterGrandfatherName *string  `json:"guaranter_grandfather_name,omitempty"`
	GuaranterPhone           *string  `json:"guaranter_phone,omitempty"`
	GuaranterSalary          *float64 `json:"guaranter_salary,omitempty" binding:"omitempty,gte=0"`

	CbeAccount  *string `json:"cbe_account,omitempty"`
	BranchName  *string `json:"branch_name,omitempty"`
	City        *string `json:"city,omitempty"`
	FinanceMode *string `json:"finance_mode,omitempty" binding:"omitempty,oneof=Conventional IFB"`
}

// ApplicationQuery filters listings.
type ApplicationQuery struct {
	CollectorEmail string `json:"collector_email" form:"collector_email"`
	Status         string `json:"status" form:"status"`
}

type ApplicationListResponse struct {
	Applications []DbApplication `json:"applications"`
}

// FormOptions is the dropdown option set exposed to the intake form.
type FormOptions struct {
	SexOptions      []string `json:"sex_options"`
	LicenseOptions  []string `json:"license_options"`
	EnterpriseSizes []string `json:"enterprise_sizes"`
	OwnershipTypes  []string `json:"ownership_types"`
	BusinessSectors []string `json:"business_sectors"`
	PremiseTypes    []string `json:"premise_types"`
	FinanceModes    []string `json:"finance_modes"`
}
