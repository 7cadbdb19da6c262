package seeders

type referenceRow struct {
	Code   string
	NameEN string
	NameAR string
}

var companiesData = []referenceRow{
	{Code: "ALPHA", NameEN: "Alpha Contracting", NameAR: "ألفا للمقاولات"},
	{Code: "DELTA", NameEN: "Delta Trading", NameAR: "دلتا للتجارة"},
	{Code: "GULFTECH", NameEN: "Gulf Tech Services", NameAR: "خدمات الخليج التقنية"},
}

var departmentsData = []referenceRow{
	{Code: "OPS", NameEN: "Operations", NameAR: "العمليات"},
	{Code: "FIN", NameEN: "Finance", NameAR: "المالية"},
	{Code: "HR", NameEN: "Human Resources", NameAR: "الموارد البشرية"},
	{Code: "IT", NameEN: "Information Technology", NameAR: "تقنية المعلومات"},
	{Code: "PROC", NameEN: "Procurement", NameAR: "المشتريات"},
}

var jobsData = []referenceRow{
	{Code: "ENG", NameEN: "Engineer", NameAR: "مهندس"},
	{Code: "SR-ENG", NameEN: "Senior Engineer", NameAR: "مهندس أول"},
	{Code: "ACC", NameEN: "Accountant", NameAR: "محاسب"},
	{Code: "SPEC", NameEN: "Specialist", NameAR: "أخصائي"},
	{Code: "SUP", NameEN: "Supervisor", NameAR: "مشرف"},
	{Code: "DRV", NameEN: "Driver", NameAR: "سائق"},
	{Code: "TECH", NameEN: "Technician", NameAR: "فني"},
}

var nationalitiesData = []referenceRow{
	{Code: "ARE", NameEN: "Emirati", NameAR: "إماراتي"},
	{Code: "EGY", NameEN: "Egyptian", NameAR: "مصري"},
	{Code: "IND", NameEN: "Indian", NameAR: "هندي"},
	{Code: "PAK", NameEN: "Pakistani", NameAR: "باكستاني"},
	{Code: "PHL", NameEN: "Filipino", NameAR: "فلبيني"},
	{Code: "JOR", NameEN: "Jordanian", NameAR: "أردني"},
	{Code: "SYR", NameEN: "Syrian", NameAR: "سوري"},
	{Code: "BGD", NameEN: "Bangladeshi", NameAR: "بنغلاديشي"},
}
