package router

// RouteTable 启动时构造一次、显式传给路由装配，不做全局变量
type RouteTable struct {
	Root    string
	About   string
	Account AccountRoutes
	Admin   AdminRoutes
}

type AccountRoutes struct {
	Root       string
	SignIn     string
	SignUp     string
	SignOut    string
	Info       string
	UpdateInfo string
}

type AdminRoutes struct {
	Root      string
	Accounts  string
	VisitLogs string
}

func DefaultRoutes() RouteTable {
	return RouteTable{
		Root:  "/",
		About: "/about",
		Account: AccountRoutes{
			Root:       "/account",
			SignIn:     "/sign-in",
			SignUp:     "/sign-up",
			SignOut:    "/sign-out",
			Info:       "/info",
			UpdateInfo: "/update",
		},
		Admin: AdminRoutes{
			Root:      "/admin",
			Accounts:  "/accounts",
			VisitLogs: "/visit-logs",
		},
	}
}
