package identity

// CombineFrontAndBack merges the results of both faces of a card. The back
// wins for CURP, elector key, section and validity; the front wins for name,
// address and ID number. Fields derived from the CURP follow the side the
// CURP came from. Either side fills a gap left by the other.
func CombineFrontAndBack(front, back Result) Result {
	out := Result{Side: SideUnknown}

	curpSide, otherSide := back, front
	if back.CURP == "" {
		curpSide, otherSide = front, back
	}
	out.CURP = curpSide.CURP
	out.CURPValid = curpSide.CURPValid
	out.BirthDate = firstNonEmpty(curpSide.BirthDate, otherSide.BirthDate)
	out.Sex = Sex(firstNonEmpty(string(curpSide.Sex), string(otherSide.Sex)))
	out.BirthState = firstNonEmpty(curpSide.BirthState, otherSide.BirthState)

	out.ElectorKey = firstNonEmpty(back.ElectorKey, front.ElectorKey)
	out.Section = firstNonEmpty(back.Section, front.Section)
	out.ValidityYear = back.ValidityYear
	if out.ValidityYear == 0 {
		out.ValidityYear = front.ValidityYear
	}

	nameSide := front
	if front.FullName == "" {
		nameSide = back
	}
	out.FullName = nameSide.FullName
	out.GivenNames = nameSide.GivenNames
	out.PaternalSurname = nameSide.PaternalSurname
	out.MaternalSurname = nameSide.MaternalSurname

	switch {
	case front.Address != nil:
		addr := *front.Address
		out.Address = &addr
	case back.Address != nil:
		addr := *back.Address
		out.Address = &addr
	}
	out.INENumber = firstNonEmpty(front.INENumber, back.INENumber)

	out.ConfidenceScore = (front.ConfidenceScore + back.ConfidenceScore) / 2
	out.Warnings = make([]string, 0, len(front.Warnings)+len(back.Warnings))
	out.Warnings = append(out.Warnings, front.Warnings...)
	out.Warnings = append(out.Warnings, back.Warnings...)
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
