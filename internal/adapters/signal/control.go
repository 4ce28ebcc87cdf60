package signal

import (
	"github.com/dkeye/djrelay/internal/core"
	"github.com/dkeye/djrelay/internal/domain"
)

func (ctl *SignalWSController) handlePing(
	conn core.SignalConnection,
) {
	ctl.sendJSON(conn, domain.EvPong, domain.Empty{})
}
