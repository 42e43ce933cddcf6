package webhookpubsub

import (
	"sync"
)

// webhookStore keeps the registered hooks indexed by id and by action.
type webhookStore struct {
	locker        sync.Mutex
	hooks         map[string]*Webhook
	hooksByAction map[WebhookAction][]string
}

func newWebhookStore() *webhookStore {
	return &webhookStore{
		hooks:         make(map[string]*Webhook),
		hooksByAction: make(map[WebhookAction][]string),
	}
}

// add stores the hook, preventing duplicates by id.
func (s *webhookStore) add(hook *Webhook) string {
	s.locker.Lock()
	defer s.locker.Unlock()

	if _, ok := s.hooks[hook.ID]; ok {
		return hook.ID
	}
	s.hooks[hook.ID] = hook
	s.hooksByAction[hook.ActionType] = append(
		s.hooksByAction[hook.ActionType], hook.ID,
	)
	return hook.ID
}

// remove drops the hook with the given id. Nothing is done in case the hook
// does not actually exist in the store.
func (s *webhookStore) remove(hookID string) {
	s.locker.Lock()
	defer s.locker.Unlock()

	hook, ok := s.hooks[hookID]
	if !ok {
		return
	}
	delete(s.hooks, hookID)

	ids := s.hooksByAction[hook.ActionType]
	for i, id := range ids {
		if id == hookID {
			s.hooksByAction[hook.ActionType] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
}

// byAction returns the hooks registered for the given action, including
// those registered for all actions.
func (s *webhookStore) byAction(actionType WebhookAction) []*Webhook {
	s.locker.Lock()
	defer s.locker.Unlock()

	ids := s.hooksByAction[actionType]
	if actionType != AllActions {
		ids = append(append([]string(nil), ids...), s.hooksByAction[AllActions]...)
	}
	hooks := make([]*Webhook, 0, len(ids))
	for _, id := range ids {
		if hook, ok := s.hooks[id]; ok {
			hooks = append(hooks, hook)
		}
	}
	return hooks
}
