package model

// Clone returns a deep copy, so callers can hand out patients without
// sharing the nested slices with the store's own state.
func (p Patient) Clone() Patient {
	out := p

	out.DentalChart = make([]ToothRecord, len(p.DentalChart))
	for i, t := range p.DentalChart {
		out.DentalChart[i] = t.Clone()
	}

	out.Visits = make([]Visit, len(p.Visits))
	copy(out.Visits, p.Visits)

	out.ChangeHistory = make([]ChangeHistoryEntry, len(p.ChangeHistory))
	copy(out.ChangeHistory, p.ChangeHistory)

	return out
}

func (t ToothRecord) Clone() ToothRecord {
	out := t
	out.Files = make([]FileAttachment, len(t.Files))
	copy(out.Files, t.Files)
	return out
}

func ClonePatients(in []Patient) []Patient {
	out := make([]Patient, len(in))
	for i, p := range in {
		out[i] = p.Clone()
	}
	return out
}

func CloneDoctors(in []Doctor) []Doctor {
	out := make([]Doctor, len(in))
	copy(out, in)
	return out
}
