package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM running authoring edit scripts.
// Single-goroutine access only (tick loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads path, which is either one .lua
// file or a directory of them (loaded in name order).
func NewEngine(path string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	info, err := os.Stat(path)
	if err != nil {
		vm.Close()
		return nil, fmt.Errorf("load scripts %s: %w", path, err)
	}
	if info.IsDir() {
		err = e.loadDir(path)
	} else {
		err = e.loadFile(path)
	}
	if err != nil {
		vm.Close()
		return nil, fmt.Errorf("load scripts: %w", err)
	}
	return e, nil
}

// NewEngineFromString is NewEngine for inline source.
func NewEngineFromString(src string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	if err := vm.DoString(src); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load script: %w", err)
	}
	return &Engine{vm: vm, log: log}, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	for _, name := range names {
		if err := e.loadFile(filepath.Join(dir, name)); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) loadFile(path string) error {
	if err := e.vm.DoFile(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	e.log.Debug("loaded lua script", zap.String("file", path))
	return nil
}

// SlotInfo describes one graph slot to the script.
type SlotInfo struct {
	Name   string
	Empty  bool
	Bound  bool
	Kinds  []string
	Q, R   int
	HasPos bool
}

// EditContext is the read-only view handed to on_tick.
type EditContext struct {
	Tick     int
	Mode     string
	Entities int // live world entities
	Slots    []SlotInfo
	Players  []string // authored player names, "" for placeholders
}

// Command types understood by the script system.
const (
	CmdAddEntity       = "add_entity"
	CmdAddEmptySlot    = "add_empty_slot"
	CmdRemoveEntity    = "remove_entity"
	CmdMoveEntity      = "move_entity"
	CmdAddComponent    = "add_component"
	CmdRemoveComponent = "remove_component"
	CmdSetUnit         = "set_unit"
	CmdSetPosition     = "set_position"
	CmdSetRotation     = "set_rotation"
	CmdSetPlayerRef    = "set_player_ref"
	CmdAddPlayer       = "add_player"
	CmdSetPlayer       = "set_player"
	CmdRemovePlayer    = "remove_player"
	CmdResetWorld      = "reset_world"
)

// EditCommand is one edit returned by on_tick. Slot, To and Index are
// 0-based; Slot is -1 when the script left it out.
type EditCommand struct {
	Type   string
	Slot   int
	To     int
	Index  int
	Name   string
	Kind   string
	Field  string
	Value  float64
	Player string
	Color  string
	Q, R   int
}

// RunEdits calls Lua on_tick(ctx) and returns its commands. A missing
// on_tick, a runtime error or a non-table result yields no commands.
func (e *Engine) RunEdits(ctx EditContext) []EditCommand {
	fn := e.vm.GetGlobal("on_tick")
	if fn == lua.LNil {
		return nil
	}

	t := e.vm.NewTable()
	t.RawSetString("tick", lua.LNumber(ctx.Tick))
	t.RawSetString("mode", lua.LString(ctx.Mode))
	t.RawSetString("entities", lua.LNumber(ctx.Entities))

	slots := e.vm.NewTable()
	for i, s := range ctx.Slots {
		row := e.vm.NewTable()
		row.RawSetString("slot", lua.LNumber(i))
		row.RawSetString("name", lua.LString(s.Name))
		row.RawSetString("empty", lua.LBool(s.Empty))
		row.RawSetString("bound", lua.LBool(s.Bound))
		kinds := e.vm.NewTable()
		for j, k := range s.Kinds {
			kinds.RawSetInt(j+1, lua.LString(k))
		}
		row.RawSetString("kinds", kinds)
		if s.HasPos {
			row.RawSetString("q", lua.LNumber(s.Q))
			row.RawSetString("r", lua.LNumber(s.R))
		}
		slots.RawSetInt(i+1, row)
	}
	t.RawSetString("slots", slots)

	players := e.vm.NewTable()
	for i, p := range ctx.Players {
		players.RawSetInt(i+1, lua.LString(p))
	}
	t.RawSetString("players", players)

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua on_tick error", zap.Error(err), zap.Int("tick", ctx.Tick))
		return nil
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		return nil
	}

	// Array part only, in order.
	var cmds []EditCommand
	for i := 1; i <= rt.Len(); i++ {
		row, ok := rt.RawGetInt(i).(*lua.LTable)
		if !ok {
			continue
		}
		cmds = append(cmds, EditCommand{
			Type:   lStr(row, "type"),
			Slot:   lOptInt(row, "slot", -1),
			To:     lOptInt(row, "to", -1),
			Index:  lOptInt(row, "index", -1),
			Name:   lStr(row, "name"),
			Kind:   lStr(row, "kind"),
			Field:  lStr(row, "field"),
			Value:  float64(lua.LVAsNumber(row.RawGetString("value"))),
			Player: lStr(row, "player"),
			Color:  lStr(row, "color"),
			Q:      lInt(row, "q"),
			R:      lInt(row, "r"),
		})
	}
	return cmds
}

// lInt reads an integer field from a Lua table.
func lInt(t *lua.LTable, key string) int {
	return int(lua.LVAsNumber(t.RawGetString(key)))
}

func lOptInt(t *lua.LTable, key string, def int) int {
	v := t.RawGetString(key)
	if v == lua.LNil {
		return def
	}
	return int(lua.LVAsNumber(v))
}

// lStr reads a string field from a Lua table.
func lStr(t *lua.LTable, key string) string {
	v := t.RawGetString(key)
	if v == lua.LNil {
		return ""
	}
	return lua.LVAsString(v)
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
