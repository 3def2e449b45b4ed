package loader

// Manager counts the items of a loading batch. The total grows as items
// start, so a model that pulls in textures raises it while loading.
// All methods run on the frame thread.
type Manager struct {
	OnStart    func(url string, loaded, total int)
	OnProgress func(url string, loaded, total int)
	OnLoad     func()
	OnError    func(url string)

	loading bool
	loaded  int
	total   int
}

// NewManager creates a manager with the given progress and completion callbacks.
func NewManager(onLoad func(), onProgress func(url string, loaded, total int)) *Manager {
	return &Manager{OnLoad: onLoad, OnProgress: onProgress}
}

// ItemStart registers a new item of the batch.
func (m *Manager) ItemStart(url string) {
	m.total++
	if !m.loading {
		m.loading = true
		if m.OnStart != nil {
			m.OnStart(url, m.loaded, m.total)
		}
	}
}

// ItemEnd marks an item finished, successfully or not. When every started
// item has ended the batch completes.
func (m *Manager) ItemEnd(url string) {
	m.loaded++
	if m.OnProgress != nil {
		m.OnProgress(url, m.loaded, m.total)
	}
	if m.loaded == m.total {
		m.loading = false
		if m.OnLoad != nil {
			m.OnLoad()
		}
	}
}

// ItemError reports a failed item. ItemEnd must still be called for it.
func (m *Manager) ItemError(url string) {
	if m.OnError != nil {
		m.OnError(url)
	}
}

// Loading reports whether items are outstanding.
func (m *Manager) Loading() bool {
	return m.loading
}

// Counts returns the loaded and total item counts.
func (m *Manager) Counts() (loaded, total int) {
	return m.loaded, m.total
}
