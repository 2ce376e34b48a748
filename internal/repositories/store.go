package repositories

// Store bundles one repository per entity type. It is built once by the
// composition root and handed to the services.
type Store struct {
	Driver     string
	Products   ProductRepository
	Categories CategoryRepository
	Cart       CartRepository
	Orders     OrderRepository
	Reviews    ReviewRepository

	close func() error
}

// Close releases resources held by the backend, if any.
func (s *Store) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}
