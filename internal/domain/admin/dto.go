package admin

type StatisticsResponse struct {
	TotalUsers           int64            `json:"total_users"`
	UsersByRole          map[string]int64 `json:"users_by_role"`
	TotalHalls           int64            `json:"total_halls"`
	PendingHalls         int64            `json:"pending_halls"`
	TotalServices        int64            `json:"total_services"`
	PendingServices      int64            `json:"pending_services"`
	TotalBookings        int64            `json:"total_bookings"`
	BookingsByStatus     map[string]int64 `json:"bookings_by_status"`
	TodayBookings        int64            `json:"today_bookings"`
	PendingVerifications int64            `json:"pending_verifications"`
	AdvanceCollected     float64          `json:"advance_collected"`
	CompletedRevenue     float64          `json:"completed_revenue"`
}

type SetRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user owner provider admin event_manager"`
}

type SubmitVerificationRequest struct {
	Documents []string `json:"documents" validate:"required,min=1,max=10,dive,url"`
}

type RejectRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type UserListFilter struct {
	Role   string `form:"role"`
	Status string `form:"status"`
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
}
