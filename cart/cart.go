package cart

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/tourin/storefront/activity"
	"github.com/tourin/storefront/internal/api"
	inErrors "github.com/tourin/storefront/internal/errors"
	"github.com/tourin/storefront/internal/log"
	"github.com/tourin/storefront/internal/otel/trace"
	"github.com/tourin/storefront/internal/resource"
)

type Item struct {
	ID        string            `json:"id"`
	Quantity  int               `json:"quantity"`
	Activity  activity.Activity `json:"activity"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

type addPayload struct {
	ActivityID string `validate:"required" json:"activityId"`
}

type quantityPayload struct {
	Quantity int `validate:"gte=1" json:"quantity"`
}

// Service layers the checkout selection set and price aggregation on top of
// the cart item resource hook. The selection is transient and always a subset
// of the loaded item ids.
type Service struct {
	hook     *resource.Collection[Item]
	counter  *Counter
	selected map[string]struct{}
}

func NewService(client *api.Client, counter *Counter) *Service {
	return &Service{
		hook: resource.NewCollection[Item]("cart items", resource.Endpoints{
			List:       "/carts",
			Create:     "/add-cart",
			Update:     "/update-cart/%s",
			Delete:     "/delete-cart/%s",
			AuthedList: true,
		}, client),
		counter:  counter,
		selected: map[string]struct{}{},
	}
}

func (s *Service) Load(c context.Context) error {
	err := s.hook.Load(c)
	s.pruneSelection()
	return err
}

func (s *Service) Items() []Item {
	return s.hook.Items()
}

func (s *Service) Loading() bool {
	return s.hook.Loading()
}

func (s *Service) Err() string {
	return s.hook.Err()
}

// ToggleItem symmetric-differences the id into or out of the selection.
// Unknown ids are ignored so the selection stays a subset of the list.
func (s *Service) ToggleItem(id string) {
	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
		return
	}
	for _, item := range s.hook.Items() {
		if item.ID == id {
			s.selected[id] = struct{}{}
			return
		}
	}
}

// ToggleAll recomputes against the current list, never a stale snapshot.
func (s *Service) ToggleAll(checked bool) {
	if !checked {
		s.selected = map[string]struct{}{}
		return
	}
	s.selected = map[string]struct{}{}
	for _, item := range s.hook.Items() {
		s.selected[item.ID] = struct{}{}
	}
}

func (s *Service) IsSelected(id string) bool {
	_, ok := s.selected[id]
	return ok
}

// Selected returns the selected ids in list order.
func (s *Service) Selected() []string {
	ids := make([]string, 0, len(s.selected))
	for _, item := range s.hook.Items() {
		if _, ok := s.selected[item.ID]; ok {
			ids = append(ids, item.ID)
		}
	}
	return ids
}

// AllSelected is derived, never stored, so it cannot desynchronize from the
// list after a delete shrinks it.
func (s *Service) AllSelected() bool {
	items := s.hook.Items()
	return len(items) > 0 && len(s.selected) == len(items)
}

// SelectedTotal sums price x quantity over exactly the selected items, using
// the non-discounted price. Pure; zero for an empty selection.
func (s *Service) SelectedTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.hook.Items() {
		if _, ok := s.selected[item.ID]; !ok {
			continue
		}
		total = total.Add(item.Activity.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// Add puts an activity in the cart and refreshes the shared cart count.
func (s *Service) Add(c context.Context, activityID string) resource.Result {
	c, span := trace.Tracer.Start(c, "CartService Add")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService Add").
		Str(log.KeyActivityID, activityID).
		Logger()

	logger.Info().Str(log.KeyProcess, "adding cart item").Msg("adding cart item")
	result := s.hook.Create(c, addPayload{ActivityID: activityID})
	s.pruneSelection()
	if result.Success {
		logger.Info().Str(log.KeyProcess, "adding cart item").Msg("added cart item")
		s.refreshCount(c, logger)
	}
	return result
}

// UpdateQuantity persists a new quantity. Anything below 1 is rejected before
// any state change or network call; decrement at quantity 1 is the caller's
// no-op.
func (s *Service) UpdateQuantity(c context.Context, id string, quantity int) resource.Result {
	c, span := trace.Tracer.Start(c, "CartService UpdateQuantity")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService UpdateQuantity").
		Str(log.KeyCartItemID, id).
		Int(log.KeyQuantity, quantity).
		Logger()

	if quantity < 1 {
		inErrors.HandleError(inErrors.ErrQuantityTooLow, span)
		logger.Error().
			Err(inErrors.ErrQuantityTooLow).
			Msg(inErrors.ErrQuantityTooLow.Error())
		return resource.Result{Error: inErrors.ErrQuantityTooLow.Error()}
	}

	logger.Info().Str(log.KeyProcess, "updating quantity").Msg("updating quantity")
	result := s.hook.Update(c, id, quantityPayload{Quantity: quantity})
	s.pruneSelection()
	if result.Success {
		logger.Info().Str(log.KeyProcess, "updating quantity").Msg("updated quantity")
	}
	return result
}

// Remove deletes the item server-side, drops it from the selection, and
// refreshes the shared cart count.
func (s *Service) Remove(c context.Context, id string) resource.Result {
	c, span := trace.Tracer.Start(c, "CartService Remove")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService Remove").
		Str(log.KeyCartItemID, id).
		Logger()

	logger.Info().Str(log.KeyProcess, "removing cart item").Msg("removing cart item")
	result := s.hook.Delete(c, id)
	delete(s.selected, id)
	s.pruneSelection()
	if result.Success {
		logger.Info().Str(log.KeyProcess, "removing cart item").Msg("removed cart item")
		s.refreshCount(c, logger)
	}
	return result
}

func (s *Service) pruneSelection() {
	if len(s.selected) == 0 {
		return
	}
	loaded := map[string]struct{}{}
	for _, item := range s.hook.Items() {
		loaded[item.ID] = struct{}{}
	}
	for id := range s.selected {
		if _, ok := loaded[id]; !ok {
			delete(s.selected, id)
		}
	}
}

// refreshCount is best effort; a failed count refresh never fails the
// mutation that triggered it.
func (s *Service) refreshCount(c context.Context, logger zerolog.Logger) {
	if s.counter == nil {
		return
	}
	if err := s.counter.Refresh(c); err != nil {
		logger.Error().
			Err(err).
			Str(log.KeyProcess, "refreshing cart count").
			Msg("failed refreshing cart count")
	}
}
