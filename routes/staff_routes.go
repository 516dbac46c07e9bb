package routes

import (
	"serendibgo/internal/handlers/staff"
	"serendibgo/internal/middleware"
	p "serendibgo/internal/permissions"

	"github.com/gin-gonic/gin"
)

// StaffHandlers bundles the handlers mounted under /api/staff.
type StaffHandlers struct {
	Auth      *staff.AuthHandler
	Dashboard *staff.DashboardHandler
	Bookings  *staff.BookingHandler
	Approvals *staff.ApprovalHandler
	Guides    *staff.GuideHandler
	Vehicles  *staff.VehicleHandler
	Hotels    *staff.HotelHandler
}

// SetupStaffRoutes mounts the back-office API on r. Everything except login
// requires an authenticated staff member.
func SetupStaffRoutes(r *gin.RouterGroup, h StaffHandlers, auth *middleware.AuthMiddleware) {
	api := r.Group("/staff")
	api.POST("/auth/login", h.Auth.Login)

	protected := api.Group("")
	protected.Use(auth.StaffAuth())

	authGroup := protected.Group("/auth")
	{
		authGroup.POST("/logout", h.Auth.Logout)
		authGroup.GET("/me", h.Auth.Me)
		authGroup.PUT("/profile", h.Auth.UpdateProfile)
	}

	protected.GET("/dashboard/overview", h.Dashboard.Overview)

	bookings := protected.Group("/bookings")
	{
		read := auth.RequirePermission(p.ModuleBookings, p.ActionRead)
		write := auth.RequirePermission(p.ModuleBookings, p.ActionWrite)

		bookings.GET("", read, h.Bookings.ListBookings)
		bookings.GET("/statistics", read, h.Bookings.GetStatistics)
		bookings.GET("/conflicts", read, h.Bookings.GetConflicts)
		bookings.GET("/export", auth.RequirePermission(p.ModuleAnalytics, p.ActionExport), h.Bookings.ExportBookings)
		bookings.GET("/:id", read, h.Bookings.GetBooking)
		bookings.POST("", write, h.Bookings.CreateBooking)
		bookings.PUT("/:id", write, h.Bookings.UpdateBooking)
		bookings.POST("/:id/cancel", write, h.Bookings.CancelBooking)
	}

	approvals := protected.Group("/approvals")
	{
		read := auth.RequirePermission(p.ModuleApprovals, p.ActionRead)
		approve := auth.RequirePermission(p.ModuleApprovals, p.ActionApprove)

		approvals.GET("/pending", read, h.Approvals.ListPending)
		approvals.GET("/statistics", read, h.Approvals.GetStatistics)
		approvals.POST("/bulk-approve", approve, h.Approvals.BulkApprove)
		approvals.GET("/:id", read, h.Approvals.GetDetails)
		approvals.POST("/:id/approve", approve, h.Approvals.Approve)
		approvals.POST("/:id/reject", approve, h.Approvals.Reject)
	}

	usersRead := auth.RequirePermission(p.ModuleUsers, p.ActionRead)
	usersWrite := auth.RequirePermission(p.ModuleUsers, p.ActionWrite)

	guides := protected.Group("/guides")
	{
		guides.GET("", usersRead, h.Guides.ListGuides)
		guides.GET("/statistics", usersRead, h.Guides.GetStatistics)
		guides.DELETE("/:id", usersWrite, h.Guides.DeleteGuide)
		guides.POST("/bulk-action", usersWrite, h.Guides.BulkAction)
	}

	vehicles := protected.Group("/vehicles")
	{
		read := auth.RequirePermission(p.ModuleVehicles, p.ActionRead)
		write := auth.RequirePermission(p.ModuleVehicles, p.ActionWrite)

		vehicles.GET("", read, h.Vehicles.ListVehicles)
		vehicles.GET("/statistics", read, h.Vehicles.GetStatistics)
		vehicles.PUT("/:id/status", auth.RequirePermission(p.ModuleVehicles, p.ActionApprove), h.Vehicles.UpdateStatus)
		vehicles.DELETE("/:id", write, h.Vehicles.DeleteVehicle)
		vehicles.POST("/bulk-action", write, h.Vehicles.BulkAction)
	}

	hotels := protected.Group("/hotels")
	{
		hotels.GET("", usersRead, h.Hotels.ListHotels)
		hotels.GET("/statistics", usersRead, h.Hotels.GetStatistics)
		hotels.POST("", usersWrite, h.Hotels.CreateHotel)
		hotels.PUT("/:id", usersWrite, h.Hotels.UpdateHotel)
		hotels.DELETE("/:id", usersWrite, h.Hotels.DeleteHotel)
		hotels.POST("/bulk-action", usersWrite, h.Hotels.BulkAction)
	}
}
