package fit

import (
	"bytes"
	"encoding/binary"
	"time"
)

// FIT base type codes.
const (
	baseEnum    byte = 0x00
	baseUint8   byte = 0x02
	baseString  byte = 0x07
	baseUint16  byte = 0x84
	baseUint32  byte = 0x86
	baseUint32z byte = 0x8C
)

// Global message numbers.
const (
	mesgFileID        uint16 = 0
	mesgWorkout       uint16 = 26
	mesgWorkoutStep   uint16 = 27
	mesgFileCreator   uint16 = 49
	mesgExerciseTitle uint16 = 264
)

// Local message types, one per definition the encoder emits.
const (
	localFileID        byte = 0
	localFileCreator   byte = 1
	localWorkout       byte = 2
	localStep          byte = 3
	localRepeat        byte = 4
	localExerciseTitle byte = 5
)

const (
	headerSize      = 14
	protocolVersion = 0x10 // 1.0
	profileVersion  = 2132

	fileTypeWorkout          = 5
	manufacturerDevelopment  = 255
	sportTraining            = 10
	subSportStrengthTraining = 20
	targetTypeOpen           = 2
	intensityActive          = 0
	intensityRest            = 1

	nameFieldLen = 32 // 31 chars + NUL, for wkt_name and wkt_step_name

	// Seconds between the Unix epoch and the FIT epoch (1989-12-31 UTC).
	fitEpochOffset = 631065600
)

// fieldDef is one (number, size, base type) triplet in a definition record.
type fieldDef struct {
	num  byte
	size byte
	base byte
}

// The field layouts below mirror the reference files byte for byte. Order
// matters: data records write values in exactly this sequence.
var (
	fileIDFields = []fieldDef{
		{0, 1, baseEnum},    // type
		{1, 2, baseUint16},  // manufacturer
		{2, 2, baseUint16},  // product
		{3, 4, baseUint32z}, // serial_number
		{4, 4, baseUint32},  // time_created
	}
	fileCreatorFields = []fieldDef{
		{0, 2, baseUint16}, // software_version
	}
	workoutFields = []fieldDef{
		{8, nameFieldLen, baseString}, // wkt_name
		{4, 1, baseEnum},              // sport
		{11, 1, baseEnum},             // sub_sport
		{6, 2, baseUint16},            // num_valid_steps
	}
	stepFields = []fieldDef{
		{254, 2, baseUint16}, // message_index
		{2, 4, baseUint32},   // duration_value
		{1, 1, baseEnum},     // duration_type
		{3, 1, baseEnum},     // target_type
		{7, 1, baseEnum},     // intensity
		{10, 2, baseUint16},  // exercise_category
		{11, 2, baseUint16},  // exercise_name
		{9, 1, baseEnum},     // equipment (reserved, written as the rest flag)
	}
	repeatFields = []fieldDef{
		{254, 2, baseUint16}, // message_index
		{2, 4, baseUint32},   // duration_step (backward index)
		{4, 4, baseUint32},   // target_value, read as repeat_steps
		{1, 1, baseEnum},     // duration_type
	}
	exerciseTitleFields = []fieldDef{
		{254, 2, baseUint16},          // message_index
		{0, 2, baseUint16},            // exercise_category
		{1, 2, baseUint16},            // exercise_name
		{2, nameFieldLen, baseString}, // wkt_step_name
	}
)

// Encode serializes the compiled step list into a complete .FIT workout
// file. createdAt stamps the file_id record. The step list must be
// non-empty; the compiler guarantees that.
func Encode(title string, steps []Step, createdAt time.Time) ([]byte, error) {
	if len(steps) == 0 {
		return nil, ErrNoExercises
	}

	var body bytes.Buffer

	// file_id
	writeDefinition(&body, localFileID, mesgFileID, fileIDFields)
	body.WriteByte(localFileID)
	body.WriteByte(fileTypeWorkout)
	writeU16(&body, manufacturerDevelopment)
	writeU16(&body, 0)
	writeU32(&body, 12345)
	writeU32(&body, uint32(createdAt.Unix()-fitEpochOffset))

	// file_creator
	writeDefinition(&body, localFileCreator, mesgFileCreator, fileCreatorFields)
	body.WriteByte(localFileCreator)
	writeU16(&body, 1)

	// workout
	writeDefinition(&body, localWorkout, mesgWorkout, workoutFields)
	body.WriteByte(localWorkout)
	writeString(&body, title, nameFieldLen)
	body.WriteByte(sportTraining)
	body.WriteByte(subSportStrengthTraining)
	writeU16(&body, uint16(len(steps)))

	// Both workout_step layouts are declared up front; data records pick
	// the local type matching their variant.
	writeDefinition(&body, localStep, mesgWorkoutStep, stepFields)
	writeDefinition(&body, localRepeat, mesgWorkoutStep, repeatFields)

	// Exercise steps carry an index into the exercise_title records that
	// follow the steps.
	titleIndex := make([]uint16, len(steps))
	nTitles := uint16(0)
	for i, s := range steps {
		if s.Kind == StepExercise {
			titleIndex[i] = nTitles
			nTitles++
		}
	}

	for i, s := range steps {
		if s.Kind == StepRepeat {
			body.WriteByte(localRepeat)
			writeU16(&body, uint16(i))
			writeU32(&body, uint32(s.DurationStep))
			writeU32(&body, uint32(s.RepeatCount))
			body.WriteByte(durationRepeatUntilStepsCmplt)
			continue
		}

		intensity := byte(intensityActive)
		if s.Kind == StepRest {
			intensity = intensityRest
		}
		body.WriteByte(localStep)
		writeU16(&body, uint16(i))
		writeU32(&body, s.DurationValue)
		body.WriteByte(s.DurationType)
		body.WriteByte(targetTypeOpen)
		body.WriteByte(intensity)
		writeU16(&body, uint16(s.CategoryID))
		writeU16(&body, titleIndex[i])
		body.WriteByte(intensity)
	}

	// exercise_title, one per exercise step
	writeDefinition(&body, localExerciseTitle, mesgExerciseTitle, exerciseTitleFields)
	for i, s := range steps {
		if s.Kind != StepExercise {
			continue
		}
		body.WriteByte(localExerciseTitle)
		writeU16(&body, titleIndex[i])
		writeU16(&body, uint16(s.CategoryID))
		writeU16(&body, 0)
		writeString(&body, s.DisplayName, nameFieldLen)
	}

	// Header: the data-size slot is known only now.
	header := make([]byte, 0, headerSize)
	header = append(header, headerSize, protocolVersion)
	header = binary.LittleEndian.AppendUint16(header, profileVersion)
	header = binary.LittleEndian.AppendUint32(header, uint32(body.Len()))
	header = append(header, '.', 'F', 'I', 'T')
	header = binary.LittleEndian.AppendUint16(header, Checksum(header))

	out := make([]byte, 0, len(header)+body.Len()+2)
	out = append(out, header...)
	out = append(out, body.Bytes()...)
	out = binary.LittleEndian.AppendUint16(out, Checksum(out))
	return out, nil
}

// writeDefinition emits a definition record: header byte with the definition
// bit set, reserved byte, little-endian architecture, global message number,
// field count, then one triplet per field.
func writeDefinition(buf *bytes.Buffer, local byte, global uint16, fields []fieldDef) {
	buf.WriteByte(0x40 | local)
	buf.WriteByte(0x00) // reserved
	buf.WriteByte(0x00) // little-endian
	writeU16(buf, global)
	buf.WriteByte(byte(len(fields)))
	for _, f := range fields {
		buf.WriteByte(f.num)
		buf.WriteByte(f.size)
		buf.WriteByte(f.base)
	}
}

func writeU16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

// writeString writes a UTF-8 string truncated to width-1 bytes and
// NUL-padded to the full declared width.
func writeString(buf *bytes.Buffer, s string, width int) {
	b := []byte(s)
	if len(b) > width-1 {
		b = b[:width-1]
	}
	buf.Write(b)
	for i := len(b); i < width; i++ {
		buf.WriteByte(0)
	}
}
