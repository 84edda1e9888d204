package query

type Fuzziness string

const (
	NoFuzziness   Fuzziness = "NONE"
	FuzzinessAuto Fuzziness = "AUTO"
	Fuzziness1    Fuzziness = "1"
	Fuzziness2    Fuzziness = "2"
)

var SupportedFuzziness = map[Fuzziness]bool{
	NoFuzziness:   true,
	FuzzinessAuto: true,
	Fuzziness1:    true,
	Fuzziness2:    true,
}

func (f Fuzziness) Enabled() bool {
	return f != "" && f != NoFuzziness
}
