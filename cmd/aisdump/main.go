// Command aisdump reads NMEA 0183 AIVDM/AIVDO sentences, one per line,
// from standard input or a TCP feed, and prints a one-line summary of
// each decoded message to standard output. Malformed or unsupported
// sentences are logged to standard error and otherwise ignored.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tormol/aislib/aismsg"
	"github.com/tormol/aislib/application"
	"github.com/tormol/aislib/bitvector"
	"github.com/tormol/aislib/dedup"
	"github.com/tormol/aislib/geo"
	"github.com/tormol/aislib/logger"
	"github.com/tormol/aislib/nmea"
	"github.com/tormol/aislib/parser"
	"github.com/tormol/aislib/reassemble"
)

var (
	timeout     = flag.Duration("timeout", reassemble.DefaultTimeout, "how long an incomplete multipart message is kept before being dropped")
	maxGroups   = flag.Int("max-groups", reassemble.DefaultMaxGroups, "maximum number of in-progress multipart messages buffered at once")
	verbose     = flag.Bool("v", false, "log every rejected sentence, not just a running count")
	inputTCP    = flag.String("tcp", "", "ip:port of a raw AIS feed to dial, instead of reading standard input")
	dedupWindow = flag.Duration("dedup", 0, "if set, drop sentences already seen within this long (useful with overlapping feeds)")
	bboxFlag    = flag.String("bbox", "", "if set as 'minLat,minLong,maxLat,maxLong', drop position reports outside this box")
)

func main() {
	flag.Parse()

	log := logger.New(os.Stderr, logger.Info)
	defer log.Close()

	log.AddPeriodic("rejects", 30*time.Second, 5*time.Minute, func(c *logger.Composer, since time.Duration) {
		c.Finish("%d sentences rejected in the last %s", rejectCount, since.Round(time.Second))
	})

	var filter *dedup.Filter
	if *dedupWindow > 0 {
		filter = dedup.New(*dedupWindow)
		defer filter.Close()
	}

	var bbox *geo.Rectangle
	if *bboxFlag != "" {
		r, err := parseBBox(*bboxFlag)
		if err != nil {
			log.Fatal("-bbox: %v", err)
		}
		bbox = &r
	}

	p := parser.New(parser.Config{MessageTimeout: *timeout, MaxIncompleteMessages: *maxGroups})

	var lines <-chan string
	if *inputTCP != "" {
		conn, err := net.Dial("tcp", *inputTCP)
		if err != nil {
			log.Fatal("dialing %s: %v", *inputTCP, err)
		}
		defer conn.Close()
		lines = readSentences(conn, log)
	} else {
		lines = scanLines(os.Stdin, log)
	}

	for line := range lines {
		if filter != nil && filter.Seen(line) {
			continue
		}
		msg, ok := p.Parse(line)
		if !ok {
			if kind, err := p.LastError(); kind != parser.KindNone {
				rejectCount++
				if *verbose {
					log.Warning("rejected %q: %v", line, err)
				}
			}
			continue
		}
		if bbox != nil {
			if pos, hasPos := messagePosition(msg); hasPos {
				if !bbox.ContainsPoint(pos) {
					continue
				}
				if *verbose {
					log.Debug("mmsi %d: %.4f degrees from filter box center", msg.Header().MMSI, pos.DistanceTo(bbox.Center()))
				}
			}
		}
		fmt.Println(summarize(msg))
	}
}

// parseBBox parses a "minLat,minLong,maxLat,maxLong" flag value into a
// geo.Rectangle.
func parseBBox(s string) (geo.Rectangle, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return geo.Rectangle{}, fmt.Errorf("want 4 comma-separated values, got %d", len(parts))
	}
	var vals [4]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return geo.Rectangle{}, fmt.Errorf("value %d: %w", i, err)
		}
		vals[i] = v
	}
	return geo.NewRectangle(vals[0], vals[1], vals[2], vals[3])
}

// messagePosition extracts the reported position from the message types
// that carry one, for filtering against a -bbox. Types with no position
// (static/voyage data, binary messages, ...) always pass a bbox filter.
func messagePosition(msg aismsg.Message) (geo.Point, bool) {
	switch m := msg.(type) {
	case *aismsg.ClassAPositionReport:
		lon, lonOK := m.Longitude.Get()
		lat, latOK := m.Latitude.Get()
		return geo.Point{Lat: lat, Long: lon}, lonOK && latOK
	case *aismsg.ClassBPositionReport:
		lon, lonOK := m.Longitude.Get()
		lat, latOK := m.Latitude.Get()
		return geo.Point{Lat: lat, Long: lon}, lonOK && latOK
	case *aismsg.BaseStationReport:
		lon, lonOK := m.Longitude.Get()
		lat, latOK := m.Latitude.Get()
		return geo.Point{Lat: lat, Long: lon}, lonOK && latOK
	default:
		return geo.Point{}, false
	}
}

var rejectCount int

// scanLines reads newline-delimited sentences the simple way, for
// sources (stdin, files) that are already line-buffered.
func scanLines(r io.Reader, log *logger.Logger) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 4096), 1<<20)
		for scanner.Scan() {
			if line := scanner.Text(); line != "" {
				out <- line
			}
		}
		if err := scanner.Err(); err != nil {
			log.Error("reading input: %v", err)
		}
	}()
	return out
}

// readSentences reads raw chunks off a streaming connection and splits
// them into sentences with nmea.SplitSentence, which tolerates sentences
// split arbitrarily across TCP reads (unlike scanLines' line buffering).
func readSentences(r io.Reader, log *logger.Logger) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 4096), 1<<20)
		scanner.Split(nmea.SplitSentence)
		for scanner.Scan() {
			out <- scanner.Text()
		}
		if err := scanner.Err(); err != nil {
			log.Error("reading tcp feed: %v", err)
		}
	}()
	return out
}

// summarize renders a short human-readable line for any supported
// message type. Types this build doesn't know about fall through to a
// generic line using only the fields every Message carries.
func summarize(msg aismsg.Message) string {
	h := msg.Header()
	switch m := msg.(type) {
	case *aismsg.ClassAPositionReport:
		lon, _ := m.Longitude.Get()
		lat, _ := m.Latitude.Get()
		sog, _ := m.SOG.Get()
		return fmt.Sprintf("type=%d mmsi=%d pos=(%.4f,%.4f) sog=%.1fkn nav=%d", h.Type, h.MMSI, lon, lat, sog, m.NavStatus)
	case *aismsg.BaseStationReport:
		lon, _ := m.Longitude.Get()
		lat, _ := m.Latitude.Get()
		return fmt.Sprintf("type=%d mmsi=%d pos=(%.4f,%.4f) utc=%04d-%02d-%02d %02d:%02d:%02d", h.Type, h.MMSI, lon, lat, m.Year, m.Month, m.Day, m.Hour, m.Minute, m.Second)
	case *aismsg.StaticVoyageData:
		return fmt.Sprintf("type=%d mmsi=%d name=%q callsign=%q dest=%q draught=%.1fm", h.Type, h.MMSI, m.VesselName, m.Callsign, m.Destination, m.Draught)
	case *aismsg.BinaryAddressedMessage:
		base := fmt.Sprintf("type=%d mmsi=%d dest=%d dac=%d fi=%d payload_bits=%d", h.Type, h.MMSI, m.DestMMSI, m.DAC, m.FI, m.Payload.Size())
		return base + summarizeApplication(m.DAC, m.FI, m.Payload)
	case *aismsg.BinaryBroadcastMessage:
		base := fmt.Sprintf("type=%d mmsi=%d dac=%d fi=%d payload_bits=%d", h.Type, h.MMSI, m.DAC, m.FI, m.Payload.Size())
		return base + summarizeApplication(m.DAC, m.FI, m.Payload)
	case *aismsg.ClassBPositionReport:
		lon, _ := m.Longitude.Get()
		lat, _ := m.Latitude.Get()
		sog, _ := m.SOG.Get()
		return fmt.Sprintf("type=%d mmsi=%d pos=(%.4f,%.4f) sog=%.1fkn", h.Type, h.MMSI, lon, lat, sog)
	case *aismsg.ClassBExtendedPositionReport:
		return fmt.Sprintf("type=%d mmsi=%d name=%q shiptype=%d", h.Type, h.MMSI, m.VesselName, m.ShipType)
	default:
		return fmt.Sprintf("type=%d mmsi=%d (unrecognized variant %T)", h.Type, h.MMSI, m)
	}
}

// summarizeApplication decodes the DAC=1 payload riding inside a binary
// message, if this build recognizes it, and renders a short suffix.
// Unrecognized DAC/FI pairs contribute nothing: the payload is still
// reported above via payload_bits, just not interpreted.
func summarizeApplication(dac uint16, fi uint8, payload *bitvector.BitVector) string {
	decoded, err := application.Decode(dac, fi, payload)
	if err != nil {
		return ""
	}
	switch a := decoded.(type) {
	case *application.AreaNotice:
		base := fmt.Sprintf(" area_notice{type=%d subareas=%d duration_min=%d}", a.NoticeType, len(a.Subareas), a.DurationMin)
		return base + summarizeSubareaBounds(a.Subareas)
	case *application.MetHydro:
		return fmt.Sprintf(" met_hydro{pos=(%.4f,%.4f)}", a.Longitude, a.Latitude)
	default:
		return ""
	}
}

// summarizeSubareaBounds renders the bounding box of every subarea whose
// shape exposes one (circle, rectangle, sector), for a host that wants to
// render or filter notices by position without re-deriving the
// trigonometry itself.
func summarizeSubareaBounds(subareas []application.Subarea) string {
	var sb strings.Builder
	for i, s := range subareas {
		b, ok := s.(application.Bounded)
		if !ok {
			continue
		}
		box := b.BoundingBox()
		fmt.Fprintf(&sb, " bbox[%d]=(%.4f,%.4f)-(%.4f,%.4f)", i, box.Min.Lat, box.Min.Long, box.Max.Lat, box.Max.Long)
	}
	return sb.String()
}
