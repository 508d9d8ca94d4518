package service

import "sync"

// FavoriteState 收藏状态机
//
//	Unknown/ConfirmedOn/ConfirmedOff --toggle--> PendingOn/PendingOff
//	Pending --success--> Confirmed(desired)
//	Pending --failure--> 切换前的确认状态（未知时为 Unknown）
type FavoriteState int

const (
	StateUnknown FavoriteState = iota
	StatePendingOn
	StatePendingOff
	StateConfirmedOn
	StateConfirmedOff
)

func (s FavoriteState) String() string {
	switch s {
	case StatePendingOn:
		return "pending_on"
	case StatePendingOff:
		return "pending_off"
	case StateConfirmedOn:
		return "confirmed_on"
	case StateConfirmedOff:
		return "confirmed_off"
	default:
		return "unknown"
	}
}

func (s FavoriteState) IsPending() bool {
	return s == StatePendingOn || s == StatePendingOff
}

// IsFavorite 按状态推断的收藏展示值，待确认状态按目标值展示
func (s FavoriteState) IsFavorite() bool {
	return s == StateConfirmedOn || s == StatePendingOn
}

func confirmedState(on bool) FavoriteState {
	if on {
		return StateConfirmedOn
	}
	return StateConfirmedOff
}

func pendingState(desired bool) FavoriteState {
	if desired {
		return StatePendingOn
	}
	return StatePendingOff
}

type favoriteKey struct {
	userID string
	mealID string
}

type favoriteEntry struct {
	lock     sync.Mutex // 同一 key 的切换串行执行
	refs     int
	state    FavoriteState
	previous FavoriteState
}

// favoriteStateTable 记录进行中的收藏切换，切换结束后条目被移除
type favoriteStateTable struct {
	mu      sync.Mutex
	entries map[favoriteKey]*favoriteEntry
}

func newFavoriteStateTable() *favoriteStateTable {
	return &favoriteStateTable{entries: make(map[favoriteKey]*favoriteEntry)}
}

// begin 占用 key 并进入待确认状态
func (t *favoriteStateTable) begin(key favoriteKey, desired bool) *favoriteEntry {
	t.mu.Lock()
	e, ok := t.entries[key]
	if !ok {
		e = &favoriteEntry{}
		t.entries[key] = e
	}
	e.refs++
	t.mu.Unlock()

	e.lock.Lock()

	t.mu.Lock()
	e.previous = StateUnknown
	e.state = pendingState(desired)
	t.mu.Unlock()
	return e
}

// observe 记录切换前从存储读到的确认状态，失败时回退到该状态
func (t *favoriteStateTable) observe(e *favoriteEntry, wasOn bool) {
	t.mu.Lock()
	e.previous = confirmedState(wasOn)
	t.mu.Unlock()
}

// finish 结束切换并返回最终状态
func (t *favoriteStateTable) finish(key favoriteKey, e *favoriteEntry, desired, ok bool) FavoriteState {
	t.mu.Lock()
	final := e.previous
	if ok {
		final = confirmedState(desired)
	}
	e.state = final
	e.refs--
	if e.refs == 0 {
		delete(t.entries, key)
	}
	t.mu.Unlock()

	e.lock.Unlock()
	return final
}

// pending 返回进行中的切换状态
func (t *favoriteStateTable) pending(key favoriteKey) (FavoriteState, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[key]
	if !ok || !e.state.IsPending() {
		return StateUnknown, false
	}
	return e.state, true
}
