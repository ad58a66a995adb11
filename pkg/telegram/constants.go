package telegram

const (
	StartCmd   = "/start"
	ReportCmd  = "/report"
	WeekCmd    = "/week"
	MonthCmd   = "/month"
	AllTimeCmd = "/alltime"
	AdminCmd   = "/admin"
)

const (
	TodayReportCmd   = "today_report"
	WeekReportCmd    = "week_report"
	MonthReportCmd   = "month_report"
	AllTimeReportCmd = "alltime_report"
	AdminMenuCmd     = "admin_menu"
	BackToMainCmd    = "back_to_main"
	DetailsPrefix    = "details:"
)

const (
	DetailsToday   = "today"
	DetailsWeek    = "week"
	DetailsMonth   = "month"
	DetailsAllTime = "alltime"
)
