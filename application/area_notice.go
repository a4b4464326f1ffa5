// Package application decodes the DAC=1 application payloads (C8) that
// ride inside AIS binary messages (types 6 and 8): Area Notice (FI=22)
// and Meteorological & Hydrological Data (FI=31). Both live on top of
// aismsg.BinaryAddressedMessage/BinaryBroadcastMessage's raw Payload bit
// buffer rather than being registered in aismsg's own dispatch table,
// since DAC/FI identify an application, not a message type.
package application

import (
	"fmt"
	"strings"
	"time"

	"github.com/tormol/aislib/bitvector"
	"github.com/tormol/aislib/geo"
)

// NoticeType enumerates the area-notice categories defined by IMO
// circular 289, carried in the notice's 7-bit type field.
type NoticeType uint8

const (
	NoticeCaution               NoticeType = 0
	NoticeCautionMarineMammals   NoticeType = 1
	NoticeCautionSeaBirds        NoticeType = 2
	NoticeCautionFish            NoticeType = 3
	NoticeCautionDiving          NoticeType = 4
	NoticeCautionHighSpeed       NoticeType = 5
	NoticeWarningStorm           NoticeType = 6
	NoticeCautionFishingGear     NoticeType = 7
	NoticeCautionTow             NoticeType = 8
	NoticeWarningIce             NoticeType = 9
	NoticeCautionTide            NoticeType = 10
	NoticeCautionCurrent         NoticeType = 11
	NoticeCautionObstruction     NoticeType = 12
	NoticeCautionConstruction    NoticeType = 13
	NoticeCautionRock            NoticeType = 14
	NoticeCautionWaterwayBlocked NoticeType = 15
	NoticeCautionIcing           NoticeType = 16
	NoticeCautionWaterLevel      NoticeType = 17
	NoticeExerciseWarning        NoticeType = 18
	NoticeSpecialProtection      NoticeType = 19
	NoticeSecurityZone           NoticeType = 20
	NoticeNoAnchoring            NoticeType = 21
	NoticeDeepDraught            NoticeType = 22
	NoticeHabitation             NoticeType = 23
	NoticeFishing                NoticeType = 24
	NoticeEnvironmental          NoticeType = 25
	NoticeDiscolouredWater       NoticeType = 26
	NoticeDangerousCargo         NoticeType = 27
	NoticeMaritimePilot          NoticeType = 28
	NoticeFerryCrossing          NoticeType = 29
	NoticeBridgeClearance        NoticeType = 30
	NoticeSubmergedCable         NoticeType = 31
	NoticeStrongCurrent          NoticeType = 32
	NoticeSubmergedObject        NoticeType = 33
	NoticeRestrictedArea         NoticeType = 34
	NoticeDangerArea             NoticeType = 35
	NoticeMilitaryExercises      NoticeType = 36
	NoticeUnderwaterOperations   NoticeType = 37
	NoticeSeaplaneOperations     NoticeType = 38
	NoticeRecreationalCraft      NoticeType = 39
	NoticeHighSpeedCraft         NoticeType = 40
	NoticeVesselTraffic          NoticeType = 41
	NoticeSalvageOperations      NoticeType = 42
	NoticeDredgingOperations     NoticeType = 43
	NoticeSurveyOperations       NoticeType = 44
	NoticePollutionResponse      NoticeType = 45
)

// AreaShape is the 3-bit discriminant for a Subarea's geometry.
type AreaShape uint8

const (
	ShapeCircle     AreaShape = 0
	ShapeRectangle  AreaShape = 1
	ShapeSector     AreaShape = 2
	ShapePolyline   AreaShape = 3
	ShapePolygon    AreaShape = 4
	ShapeText       AreaShape = 5
	ShapeReserved6  AreaShape = 6
	ShapeReserved7  AreaShape = 7
)

// Subarea is the tagged variant over the area-notice shape union
// (spec.md §9's design note in place of the source's untagged C union):
// every concrete shape type below implements it.
type Subarea interface {
	Shape() AreaShape
	Center() geo.Point
}

// commonSubarea holds the fields every shape shares: its anchor point.
type commonSubarea struct {
	Position geo.Point
}

func (c commonSubarea) Center() geo.Point { return c.Position }

// Bounded is implemented by the Subarea shapes whose wire format gives
// enough information to compute an axis-aligned bounding box without
// external data — unlike Polyline/Polygon, whose extent depends entirely
// on their (possibly absent) points. A host wanting to render or filter
// notices by position can check for this with a type assertion instead of
// re-deriving each shape's trigonometry.
type Bounded interface {
	BoundingBox() geo.Rectangle
}

type CircleSubarea struct {
	commonSubarea
	RadiusMeters uint16
}

func (CircleSubarea) Shape() AreaShape { return ShapeCircle }

// BoundingBox returns the square circumscribing the circle.
func (c CircleSubarea) BoundingBox() geo.Rectangle {
	diameter := float64(c.RadiusMeters) * 2
	return geo.RectangleFromCenterAndDims(c.Position, diameter, diameter, 0)
}

type RectangleSubarea struct {
	commonSubarea
	EDimensionMeters   uint16
	NDimensionMeters   uint16
	OrientationDegrees uint16
}

func (RectangleSubarea) Shape() AreaShape { return ShapeRectangle }

// BoundingBox returns the axis-aligned box enclosing the notified
// rectangle after rotating it by its orientation.
func (r RectangleSubarea) BoundingBox() geo.Rectangle {
	return geo.RectangleFromCenterAndDims(r.Position, float64(r.EDimensionMeters), float64(r.NDimensionMeters), float64(r.OrientationDegrees))
}

type SectorSubarea struct {
	commonSubarea
	RadiusMeters      uint16
	LeftBoundDegrees  uint16
	RightBoundDegrees uint16
}

func (SectorSubarea) Shape() AreaShape { return ShapeSector }

// BoundingBox returns the square circumscribing the sector's full circle,
// ignoring its left/right bounds: a conservative (over-wide) box rather
// than one that needs the sector's actual angular wedge traced out.
func (s SectorSubarea) BoundingBox() geo.Rectangle {
	diameter := float64(s.RadiusMeters) * 2
	return geo.RectangleFromCenterAndDims(s.Position, diameter, diameter, 0)
}

// PolylineSubarea and PolygonSubarea carry at most two additional points
// beyond the anchor. Encode always writes exactly two point records (zero
// points for any that are missing) and drops points beyond the second;
// DecodeAreaNotice reads at most two. Longer point lists and the chained
// multi-record encoding are not supported.
type PolylineSubarea struct {
	commonSubarea
	ScaleFactor uint8
	Points      []geo.Point
}

func (PolylineSubarea) Shape() AreaShape { return ShapePolyline }

type PolygonSubarea struct {
	commonSubarea
	ScaleFactor uint8
	Points      []geo.Point
}

func (PolygonSubarea) Shape() AreaShape { return ShapePolygon }

type TextSubarea struct {
	commonSubarea
	Text string
}

func (TextSubarea) Shape() AreaShape { return ShapeText }

// ReservedSubarea preserves an unknown shape code's position so the
// remainder of the notice can still be skipped over safely.
type ReservedSubarea struct {
	commonSubarea
	Code AreaShape
}

func (r ReservedSubarea) Shape() AreaShape { return r.Code }

// AreaNotice is the decoded DAC=1/FI=22 application payload.
type AreaNotice struct {
	MessageVersion uint8
	NoticeType     NoticeType
	StartMonth     uint8 // 0 = not available
	StartDay       uint8
	StartHour      uint8
	StartMinute    uint8
	DurationMin    uint16 // 0 = unlimited
	Subareas       []Subarea
}

const areaNoticeHeaderBits = 51 // 8 + 7 + 4 + 5 + 5 + 6 + 16

// StartTime reconstructs an absolute timestamp for the notice's start
// time: the message carries no year, so the year is inferred from now,
// wrapping back a year if the encoded month is later than now's month
// (e.g. a notice for December decoded in January is taken to mean last
// December, not eleven months ahead).
func (a *AreaNotice) StartTime(now time.Time) time.Time {
	if a.StartMonth == 0 {
		return time.Time{}
	}
	now = now.UTC()
	year := now.Year()
	if int(a.StartMonth) > int(now.Month()) {
		year--
	}
	return time.Date(year, time.Month(a.StartMonth), int(a.StartDay), int(a.StartHour), int(a.StartMinute), 0, 0, time.UTC)
}

// DecodeAreaNotice parses a DAC=1/FI=22 application payload out of the
// binary-message payload bits.
func DecodeAreaNotice(bits *bitvector.BitVector) (*AreaNotice, error) {
	if bits.Size() < areaNoticeHeaderBits {
		return nil, fmt.Errorf("area notice needs at least %d bits, got %d", areaNoticeHeaderBits, bits.Size())
	}
	version, _ := bits.GetUint(0, 8)
	notice, _ := bits.GetUint(8, 7)
	month, _ := bits.GetUint(15, 4)
	day, _ := bits.GetUint(19, 5)
	hour, _ := bits.GetUint(24, 5)
	minute, _ := bits.GetUint(29, 6)
	duration, _ := bits.GetUint(35, 16)

	a := &AreaNotice{
		MessageVersion: uint8(version),
		NoticeType:     NoticeType(notice),
		StartMonth:     uint8(month),
		StartDay:       uint8(day),
		StartHour:      uint8(hour),
		StartMinute:    uint8(minute),
		DurationMin:    uint16(duration),
	}

	offset := areaNoticeHeaderBits
	for offset+3 <= bits.Size() {
		shapeCode, _ := bits.GetUint(offset, 3)
		offset += 3
		if offset+55 > bits.Size() {
			break
		}
		lonRaw, _ := bits.GetInt(offset, 28)
		offset += 28
		latRaw, _ := bits.GetInt(offset, 27)
		offset += 27
		common := commonSubarea{Position: geo.Point{Long: float64(lonRaw) / 600000.0, Lat: float64(latRaw) / 600000.0}}

		switch AreaShape(shapeCode) {
		case ShapeCircle:
			if offset+14 > bits.Size() {
				a.Subareas = append(a.Subareas, CircleSubarea{commonSubarea: common})
				return a, nil
			}
			radius, _ := bits.GetUint(offset, 12)
			offset += 14 // 12-bit radius + 2-bit spare
			a.Subareas = append(a.Subareas, CircleSubarea{commonSubarea: common, RadiusMeters: uint16(radius)})

		case ShapeRectangle:
			if offset+27 > bits.Size() {
				a.Subareas = append(a.Subareas, RectangleSubarea{commonSubarea: common})
				return a, nil
			}
			e, _ := bits.GetUint(offset, 8)
			n, _ := bits.GetUint(offset+8, 8)
			orient, _ := bits.GetUint(offset+16, 9)
			offset += 27 // 8 + 8 + 9 + 2 spare
			a.Subareas = append(a.Subareas, RectangleSubarea{commonSubarea: common, EDimensionMeters: uint16(e), NDimensionMeters: uint16(n), OrientationDegrees: uint16(orient)})

		case ShapeSector:
			if offset+32 > bits.Size() {
				a.Subareas = append(a.Subareas, SectorSubarea{commonSubarea: common})
				return a, nil
			}
			radius, _ := bits.GetUint(offset, 12)
			left, _ := bits.GetUint(offset+12, 9)
			right, _ := bits.GetUint(offset+21, 9)
			offset += 32 // 12 + 9 + 9 + 2 spare
			a.Subareas = append(a.Subareas, SectorSubarea{commonSubarea: common, RadiusMeters: uint16(radius), LeftBoundDegrees: uint16(left), RightBoundDegrees: uint16(right)})

		case ShapePolyline, ShapePolygon:
			if offset+2 > bits.Size() {
				break
			}
			scale, _ := bits.GetUint(offset, 2)
			offset += 2
			var points []geo.Point
			for i := 0; i < 2 && offset+55 <= bits.Size(); i++ {
				plon, _ := bits.GetInt(offset, 28)
				offset += 28
				plat, _ := bits.GetInt(offset, 27)
				offset += 27
				points = append(points, geo.Point{Long: float64(plon) / 600000.0, Lat: float64(plat) / 600000.0})
			}
			if AreaShape(shapeCode) == ShapePolyline {
				a.Subareas = append(a.Subareas, PolylineSubarea{commonSubarea: common, ScaleFactor: uint8(scale), Points: points})
			} else {
				a.Subareas = append(a.Subareas, PolygonSubarea{commonSubarea: common, ScaleFactor: uint8(scale), Points: points})
			}

		case ShapeText:
			var sb strings.Builder
			for i := 0; i < 14 && offset+6 <= bits.Size(); i++ {
				raw, _ := bits.GetUint(offset, 6)
				offset += 6
				if raw == 0 {
					break
				}
				if raw < 32 {
					raw += 64 // 6-bit values 1-31 are 'A'..'_'
				}
				sb.WriteByte(byte(raw))
			}
			a.Subareas = append(a.Subareas, TextSubarea{commonSubarea: common, Text: sb.String()})

		default:
			a.Subareas = append(a.Subareas, ReservedSubarea{commonSubarea: common, Code: AreaShape(shapeCode)})
		}
	}
	return a, nil
}

// Encode serializes the notice back to its application-payload bit
// layout, suitable for assigning to a BinaryAddressedMessage or
// BinaryBroadcastMessage's Payload field.
func (a *AreaNotice) Encode() *bitvector.BitVector {
	b := bitvector.New(areaNoticeHeaderBits)
	_ = b.AppendUint(uint64(a.MessageVersion), 8)
	_ = b.AppendUint(uint64(a.NoticeType), 7)
	_ = b.AppendUint(uint64(a.StartMonth), 4)
	_ = b.AppendUint(uint64(a.StartDay), 5)
	_ = b.AppendUint(uint64(a.StartHour), 5)
	_ = b.AppendUint(uint64(a.StartMinute), 6)
	_ = b.AppendUint(uint64(a.DurationMin), 16)

	for _, sub := range a.Subareas {
		_ = b.AppendUint(uint64(sub.Shape()), 3)
		center := sub.Center()
		_ = b.AppendInt(int64(center.Long*600000.0), 28)
		_ = b.AppendInt(int64(center.Lat*600000.0), 27)

		switch s := sub.(type) {
		case CircleSubarea:
			_ = b.AppendUint(uint64(s.RadiusMeters), 12)
			_ = b.AppendUint(0, 2)
		case RectangleSubarea:
			_ = b.AppendUint(uint64(s.EDimensionMeters), 8)
			_ = b.AppendUint(uint64(s.NDimensionMeters), 8)
			_ = b.AppendUint(uint64(s.OrientationDegrees), 9)
			_ = b.AppendUint(0, 2)
		case SectorSubarea:
			_ = b.AppendUint(uint64(s.RadiusMeters), 12)
			_ = b.AppendUint(uint64(s.LeftBoundDegrees), 9)
			_ = b.AppendUint(uint64(s.RightBoundDegrees), 9)
			_ = b.AppendUint(0, 2)
		case PolylineSubarea:
			encodePoints(b, s.ScaleFactor, s.Points)
		case PolygonSubarea:
			encodePoints(b, s.ScaleFactor, s.Points)
		case TextSubarea:
			for i := 0; i < len(s.Text) && i < 14; i++ {
				c := s.Text[i]
				if c >= 64 {
					c -= 64 // 'A'..'_' are 6-bit values 1-31
				}
				_ = b.AppendUint(uint64(c), 6)
			}
			if len(s.Text) < 14 {
				_ = b.AppendUint(0, 6)
			}
		case ReservedSubarea:
			// no shape-specific fields to write
		}
	}
	return b
}

func encodePoints(b *bitvector.BitVector, scale uint8, points []geo.Point) {
	_ = b.AppendUint(uint64(scale), 2)
	for i := 0; i < 2; i++ {
		var p geo.Point
		if i < len(points) {
			p = points[i]
		}
		_ = b.AppendInt(int64(p.Long*600000.0), 28)
		_ = b.AppendInt(int64(p.Lat*600000.0), 27)
	}
}
