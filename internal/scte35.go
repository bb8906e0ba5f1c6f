package internal

import (
	"github.com/Comcast/gots/v2/scte35"
	"github.com/garethfenn/tsduck/common"
)

type SCTE35Info struct {
	PID           uint16                   `json:"pid"`
	SpliceCommand SpliceCommand            `json:"spliceCommand"`
	SegDesc       []SegmentationDescriptor `json:"segmentationDes,omitempty"`
}

type SpliceCommand struct {
	Type      string `json:"type"`
	EventId   uint32 `json:"eventId"`
	PTS       uint64 `json:"pts"`
	Time      string `json:"time,omitempty"`
	Duration  uint64 `json:"duration,omitempty"`
	Out       bool   `json:"outOfNetwork,omitempty"`
	Immediate bool   `json:"immediate,omitempty"`
}

type SegmentationDescriptor struct {
	SegmentNumber uint8  `json:"segmentNumber"`
	EventId       uint32 `json:"eventId"`
	Type          string `json:"type"`
	Duration      uint64 `json:"duration,omitempty"`
}

// toSCTE35 flattens a splice message into a report, with the splice
// time rendered in the given timestamp format.
func toSCTE35(pid uint16, msg scte35.SCTE35, f common.TimestampFormat) SCTE35Info {
	scte35Info := SCTE35Info{PID: pid, SpliceCommand: toSpliceCommand(msg.CommandInfo(), f)}

	if insert, ok := msg.CommandInfo().(scte35.SpliceInsertCommand); ok {
		scte35Info.SpliceCommand = toSpliceInsertCommand(insert, f)
	}
	for _, desc := range msg.Descriptors() {
		scte35Info.SegDesc = append(scte35Info.SegDesc, toSegmentationDescriptor(desc))
	}

	return scte35Info
}

func toSpliceCommand(spliceCommand scte35.SpliceCommand, f common.TimestampFormat) SpliceCommand {
	spliceCmd := SpliceCommand{Type: getCommandType(spliceCommand)}
	if spliceCommand.HasPTS() {
		spliceCmd.PTS = uint64(spliceCommand.PTS())
		spliceCmd.Time = common.PTSToString(common.PTS(spliceCmd.PTS), f)
	}

	return spliceCmd
}

func toSpliceInsertCommand(spliceCommand scte35.SpliceInsertCommand, f common.TimestampFormat) SpliceCommand {
	spliceCmd := SpliceCommand{Type: getCommandType(spliceCommand)}
	spliceCmd.EventId = spliceCommand.EventID()
	spliceCmd.Immediate = spliceCommand.SpliceImmediate()
	spliceCmd.Out = spliceCommand.IsOut()
	if spliceCommand.HasPTS() {
		spliceCmd.PTS = uint64(spliceCommand.PTS())
		spliceCmd.Time = common.PTSToString(common.PTS(spliceCmd.PTS), f)
	}
	if spliceCommand.HasDuration() {
		spliceCmd.Duration = uint64(spliceCommand.Duration())
	}

	return spliceCmd
}

func toSegmentationDescriptor(segdesc scte35.SegmentationDescriptor) SegmentationDescriptor {
	segDesc := SegmentationDescriptor{}
	segDesc.EventId = segdesc.EventID()
	segDesc.Type = scte35.SegDescTypeNames[segdesc.TypeID()]
	segDesc.SegmentNumber = segdesc.SegmentNumber()
	if segdesc.HasDuration() {
		segDesc.Duration = uint64(segdesc.Duration())
	}
	return segDesc
}

func getCommandType(spliceCommand scte35.SpliceCommand) string {
	return scte35.SpliceCommandTypeNames[spliceCommand.CommandType()]
}
