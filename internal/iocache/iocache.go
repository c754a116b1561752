package iocache

import (
	"sync"

	"github.com/averykuo/ghpulse/internal/contract"
)

// CacheStoreManager manages the range cache and history store instances.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	ranges       contract.CacheStore
	history      contract.HistoryStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetRangeStore returns the snapshot range CacheStore.
func (mgr *CacheStoreManager) GetRangeStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.ranges
}

// GetHistoryStore returns the load HistoryStore.
func (mgr *CacheStoreManager) GetHistoryStore() contract.HistoryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.history
}
