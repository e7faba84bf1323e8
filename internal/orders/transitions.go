package orders

import "github.com/Nicoczyruk/standburg-project-sub000/internal/models"

// Transitions es el ciclo de vida del pedido. Cancelar es posible desde
// cualquier estado no terminal.
var Transitions = map[models.OrderState][]models.OrderState{
	models.OrderPending:       {models.OrderToConfirm, models.OrderCanceled},
	models.OrderToConfirm:     {models.OrderInPreparation, models.OrderCanceled},
	models.OrderInPreparation: {models.OrderReady, models.OrderCanceled},
	models.OrderReady:         {models.OrderDelivered, models.OrderCanceled},
	models.OrderDelivered:     {models.OrderPaid, models.OrderCanceled},
	models.OrderPaid:          nil,
	models.OrderCanceled:      nil,
}

// CanTransition indica si el grafo admite pasar de from a to. Repetir el
// estado actual siempre está permitido.
func CanTransition(from, to models.OrderState) bool {
	if from == to {
		return true
	}
	for _, next := range Transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
