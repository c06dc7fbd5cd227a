package memory

// JobStatus reports the status of the job for scanID.
func (s *Store) JobStatus(scanID string) (status string, attempts int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, j := range s.jobs {
		if j.ScanID == scanID {
			return j.status, j.Attempts, true
		}
	}
	return "", 0, false
}
