package common

// PIDClass categorizes the kind of data a PID carries.
type PIDClass int

const (
	PIDClassUndefined PIDClass = iota
	PIDClassPSI
	PIDClassEMM
	PIDClassECM
	PIDClassVideo
	PIDClassAudio
	PIDClassSubtitles
	PIDClassData
	PIDClassStuffing
	PIDClassCue
)

var pidClassNames = map[PIDClass]string{
	PIDClassUndefined: "undefined",
	PIDClassPSI:       "PSI/SI",
	PIDClassEMM:       "EMM",
	PIDClassECM:       "ECM",
	PIDClassVideo:     "video",
	PIDClassAudio:     "audio",
	PIDClassSubtitles: "subtitles",
	PIDClassData:      "data",
	PIDClassStuffing:  "stuffing",
	PIDClassCue:       "cue",
}

func (c PIDClass) String() string {
	if name, ok := pidClassNames[c]; ok {
		return name
	}
	return pidClassNames[PIDClassUndefined]
}

// MarshalText makes PIDClass render as its name in JSON output.
func (c PIDClass) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
