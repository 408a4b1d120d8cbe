package server

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	schedulectrl "aquaorders/internal/schedule/controller"
	sequencectrl "aquaorders/internal/sequence/controller"
	workflowctrl "aquaorders/internal/workflow/controller"
)

func NewRouter(
	orderCtrl *sequencectrl.OrderController,
	transitionCtrl *workflowctrl.TransitionController,
	scheduleCtrl *schedulectrl.ScheduleController,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/orders", orderCtrl.SubmitOrder)
		r.Post("/allocations", orderCtrl.AllocateRange)

		r.Route("/orders/{orderId}", func(r chi.Router) {
			r.Post("/status", transitionCtrl.ApplyTransition)
			r.Get("/statuses", transitionCtrl.ValidStatuses)
			r.Get("/history", transitionCtrl.ListHistory)
			r.Patch("/delivery-date", scheduleCtrl.ChangeDeliveryDate)
			r.Patch("/ship-qty", scheduleCtrl.UpdateShipQty)
		})

		r.Get("/schedule/weeks", scheduleCtrl.AvailableWeeks)
		r.Get("/schedule/weeks/{week}", scheduleCtrl.WeekSchedule)
	})

	return r
}
