package console

// I/O ports of the CRTC controller in color text mode.
const (
	crtcIndexPort uint16 = 0x3d4
	crtcDataPort  uint16 = 0x3d5

	// DefaultSettleIterations is the number of I/O bus cycles to wait after
	// each CRTC register access.
	DefaultSettleIterations = 4
)

// CRTCPort is the CursorPort of VGA compatible display adapters. The settle
// delay is implemented as a fixed number of I/O bus cycles.
type CRTCPort struct {
	settleIterations int
}

// NewCRTCPort returns a CRTC register port that waits settleIterations bus
// cycles after each access.
func NewCRTCPort(settleIterations int) *CRTCPort {
	return &CRTCPort{settleIterations: settleIterations}
}

// Select chooses the CRTC register targeted by the next Data call.
func (p *CRTCPort) Select(reg uint8) {
	portWriteByteFn(crtcIndexPort, reg)
}

// Data writes val to the selected CRTC register.
func (p *CRTCPort) Data(val uint8) {
	portWriteByteFn(crtcDataPort, val)
}

// Settle waits for the CRTC to latch the last register access.
func (p *CRTCPort) Settle() {
	for i := 0; i < p.settleIterations; i++ {
		ioWaitFn()
	}
}
