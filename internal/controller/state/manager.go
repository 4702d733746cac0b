package state

import (
	"sort"
	"sync"

	"github.com/Freeeeeet/music_school_scheduler/internal/model"
)

// Manager управляет состояниями диалогов, фильтрами и подписками чатов
type Manager struct {
	mu          sync.RWMutex
	states      map[int64]*UserData       // chatID -> UserData
	filters     map[int64]model.FilterSet // chatID -> фильтры расписания
	subscribers map[int64]bool            // чаты с ежедневной рассылкой
}

// NewManager создаёт новый менеджер состояний
func NewManager() *Manager {
	return &Manager{
		states:      make(map[int64]*UserData),
		filters:     make(map[int64]model.FilterSet),
		subscribers: make(map[int64]bool),
	}
}

// GetState получает текущее состояние пользователя
func (sm *Manager) GetState(chatID int64) UserState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[chatID]; exists {
		return userData.State
	}
	return StateNone
}

// SetState устанавливает состояние пользователя
func (sm *Manager) SetState(chatID int64, state UserState) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if state == StateNone {
		// Если состояние None, удаляем запись
		delete(sm.states, chatID)
		return
	}

	if _, exists := sm.states[chatID]; !exists {
		sm.states[chatID] = &UserData{
			State: state,
			Data:  make(map[string]interface{}),
		}
	} else {
		sm.states[chatID].State = state
	}
}

// GetData получает временные данные пользователя
func (sm *Manager) GetData(chatID int64, key string) (interface{}, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[chatID]; exists {
		value, ok := userData.Data[key]
		return value, ok
	}
	return nil, false
}

// SetData устанавливает временные данные пользователя
func (sm *Manager) SetData(chatID int64, key string, value interface{}) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, exists := sm.states[chatID]; !exists {
		// Создаём запись если её нет
		sm.states[chatID] = &UserData{
			State: StateNone,
			Data:  make(map[string]interface{}),
		}
	}
	sm.states[chatID].Data[key] = value
}

// ClearState очищает состояние и данные диалога. Фильтры и подписка остаются.
func (sm *Manager) ClearState(chatID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.states, chatID)
}

// Filters возвращает копию фильтров чата
func (sm *Manager) Filters(chatID int64) model.FilterSet {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.filters[chatID].Clone()
}

// UpdateFilters применяет изменение к фильтрам чата под блокировкой
func (sm *Manager) UpdateFilters(chatID int64, update func(f *model.FilterSet) error) (model.FilterSet, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	f := sm.filters[chatID].Clone()
	if err := update(&f); err != nil {
		return sm.filters[chatID].Clone(), err
	}

	if f.HasActive() {
		sm.filters[chatID] = f
	} else {
		delete(sm.filters, chatID)
	}
	return f.Clone(), nil
}

// Subscribe включает или выключает ежедневную рассылку для чата
func (sm *Manager) Subscribe(chatID int64, on bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if on {
		sm.subscribers[chatID] = true
	} else {
		delete(sm.subscribers, chatID)
	}
}

func (sm *Manager) IsSubscribed(chatID int64) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.subscribers[chatID]
}

// Subscribers возвращает чаты с рассылкой в стабильном порядке
func (sm *Manager) Subscribers() []int64 {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	out := make([]int64, 0, len(sm.subscribers))
	for id := range sm.subscribers {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
