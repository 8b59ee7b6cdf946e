package store

func reduceMetadata(s State, a Action) State {
	switch a := a.(type) {
	case CratesRequested:
		s.Crates.RequestsInProgress++
		s.Crates.Error = ""
	case CratesLoaded:
		s.Crates.RequestsInProgress = max(s.Crates.RequestsInProgress-1, 0)
		s.Crates.Items = append(s.Crates.Items[:0:0], a.Crates...)
		s.Crates.Error = ""
	case CratesFailed:
		s.Crates.RequestsInProgress = max(s.Crates.RequestsInProgress-1, 0)
		s.Crates.Error = a.Error
	case VersionsRequested:
		s.Versions.RequestsInProgress++
		s.Versions.Error = ""
	case VersionsLoaded:
		v := a.Versions
		s.Versions = VersionSet{
			Stable:             v.Stable,
			Beta:               v.Beta,
			Nightly:            v.Nightly,
			Rustfmt:            v.Rustfmt,
			Clippy:             v.Clippy,
			Miri:               v.Miri,
			Loaded:             true,
			RequestsInProgress: max(s.Versions.RequestsInProgress-1, 0),
		}
	case VersionsFailed:
		s.Versions.RequestsInProgress = max(s.Versions.RequestsInProgress-1, 0)
		s.Versions.Error = a.Error
	}
	return s
}
