// Package runtimeabi declares the fixed set of C-ABI extern functions the
// host runtime library provides. It is declarative only: no function body
// here is ever executed by the compiler. internal/codegen/llvmgen looks
// specs up by name (ByName); the lowerer and the driver's merge step do not
// read this table, they declare externs from the call sites they lower.
package runtimeabi

import "github.com/zacolang/zaco/internal/ir"

// ExternSpec names one runtime-provided function and its MIR signature.
type ExternSpec struct {
	Name   string
	Params []ir.IrType
	Return ir.IrType
}

// AllSpecs returns every extern the runtime ABI fixes, grouped by concern
// as in the ABI's own external interface description.
func AllSpecs() []ExternSpec {
	var specs []ExternSpec
	specs = append(specs, memorySpecs()...)
	specs = append(specs, stringSpecs()...)
	specs = append(specs, fsSpecs()...)
	specs = append(specs, pathOsProcessSpecs()...)
	specs = append(specs, httpSpecs()...)
	specs = append(specs, eventSpecs()...)
	specs = append(specs, timerSpecs()...)
	specs = append(specs, promiseSpecs()...)
	specs = append(specs, lifecycleSpecs()...)
	specs = append(specs, lowererHelperSpecs()...)
	return specs
}

func memorySpecs() []ExternSpec {
	return []ExternSpec{
		{Name: "zaco_alloc", Params: []ir.IrType{ir.I64()}, Return: ir.Ptr()},
		{Name: "zaco_free", Params: []ir.IrType{ir.Ptr()}, Return: ir.Void()},
		{Name: "zaco_rc_inc", Params: []ir.IrType{ir.Ptr()}, Return: ir.Void()},
		{Name: "zaco_rc_dec", Params: []ir.IrType{ir.Ptr()}, Return: ir.Void()},
		{Name: "zaco_clone_str", Params: []ir.IrType{ir.Ptr()}, Return: ir.Ptr()},
	}
}

func stringSpecs() []ExternSpec {
	return []ExternSpec{
		{Name: "zaco_compatible_str_new", Params: []ir.IrType{ir.Ptr(), ir.I64()}, Return: ir.Ptr()},
		{Name: "zaco_str_concat", Params: []ir.IrType{ir.Str(), ir.Str()}, Return: ir.Str()},
	}
}

func fsSpecs() []ExternSpec {
	return []ExternSpec{
		{Name: "zaco_fs_read_file_sync", Params: []ir.IrType{ir.Str()}, Return: ir.Str()},
		{Name: "zaco_fs_write_file_sync", Params: []ir.IrType{ir.Str(), ir.Str()}, Return: ir.Bool()},
		{Name: "zaco_fs_exists_sync", Params: []ir.IrType{ir.Str()}, Return: ir.Bool()},
		{Name: "zaco_fs_mkdir_sync", Params: []ir.IrType{ir.Str(), ir.Bool()}, Return: ir.Bool()},
		{Name: "zaco_fs_rmdir_sync", Params: []ir.IrType{ir.Str()}, Return: ir.Bool()},
		{Name: "zaco_fs_unlink_sync", Params: []ir.IrType{ir.Str()}, Return: ir.Bool()},
		{Name: "zaco_fs_stat_size", Params: []ir.IrType{ir.Str()}, Return: ir.I64()},
		{Name: "zaco_fs_stat_is_file", Params: []ir.IrType{ir.Str()}, Return: ir.Bool()},
		{Name: "zaco_fs_stat_is_dir", Params: []ir.IrType{ir.Str()}, Return: ir.Bool()},
		{Name: "zaco_fs_readdir_sync", Params: []ir.IrType{ir.Str()}, Return: ir.Str()},
		{Name: "zaco_fs_read_file", Params: []ir.IrType{ir.Str(), ir.Str(), ir.Ptr()}, Return: ir.Void()},
	}
}

func pathOsProcessSpecs() []ExternSpec {
	return []ExternSpec{
		{Name: "zaco_path_join", Params: []ir.IrType{ir.Str(), ir.Str()}, Return: ir.Str()},
		{Name: "zaco_path_dirname", Params: []ir.IrType{ir.Str()}, Return: ir.Str()},
		{Name: "zaco_path_basename", Params: []ir.IrType{ir.Str()}, Return: ir.Str()},
		{Name: "zaco_path_extname", Params: []ir.IrType{ir.Str()}, Return: ir.Str()},
		{Name: "zaco_path_resolve", Params: []ir.IrType{ir.Str()}, Return: ir.Str()},
		{Name: "zaco_os_platform", Params: nil, Return: ir.Str()},
		{Name: "zaco_os_arch", Params: nil, Return: ir.Str()},
		{Name: "zaco_os_eol", Params: nil, Return: ir.Str()},
		{Name: "zaco_path_sep", Params: nil, Return: ir.Str()},
		{Name: "zaco_process_argv", Params: []ir.IrType{ir.I64()}, Return: ir.Str()},
		{Name: "zaco_process_env", Params: []ir.IrType{ir.Str()}, Return: ir.Str()},
		{Name: "zaco_process_exit", Params: []ir.IrType{ir.I64()}, Return: ir.Void()},
	}
}

func httpSpecs() []ExternSpec {
	return []ExternSpec{
		{Name: "zaco_http_get", Params: []ir.IrType{ir.Str()}, Return: ir.Ptr()},
		{Name: "zaco_http_post", Params: []ir.IrType{ir.Str(), ir.Str()}, Return: ir.Ptr()},
		{Name: "zaco_http_put", Params: []ir.IrType{ir.Str(), ir.Str()}, Return: ir.Ptr()},
		{Name: "zaco_http_delete", Params: []ir.IrType{ir.Str()}, Return: ir.Ptr()},
		{Name: "zaco_http_get_status", Params: []ir.IrType{ir.Ptr()}, Return: ir.I64()},
		{Name: "zaco_http_get_headers", Params: []ir.IrType{ir.Ptr()}, Return: ir.Str()},
		{Name: "zaco_http_get_async", Params: []ir.IrType{ir.Str(), ir.Ptr(), ir.Ptr()}, Return: ir.Void()},
	}
}

func eventSpecs() []ExternSpec {
	return []ExternSpec{
		{Name: "zaco_events_new", Params: nil, Return: ir.Ptr()},
		{Name: "zaco_events_on", Params: []ir.IrType{ir.Ptr(), ir.Str(), ir.Ptr(), ir.Ptr()}, Return: ir.I64()},
		{Name: "zaco_events_once", Params: []ir.IrType{ir.Ptr(), ir.Str(), ir.Ptr(), ir.Ptr()}, Return: ir.I64()},
		{Name: "zaco_events_emit", Params: []ir.IrType{ir.Ptr(), ir.Str(), ir.Ptr()}, Return: ir.Void()},
		{Name: "zaco_events_remove_all", Params: []ir.IrType{ir.Ptr(), ir.Str()}, Return: ir.Void()},
		{Name: "zaco_events_listener_count", Params: []ir.IrType{ir.Ptr(), ir.Str()}, Return: ir.I64()},
		{Name: "zaco_events_remove_listener", Params: []ir.IrType{ir.Ptr(), ir.I64()}, Return: ir.Void()},
		{Name: "zaco_events_event_names", Params: []ir.IrType{ir.Ptr()}, Return: ir.Str()},
		{Name: "zaco_events_destroy", Params: []ir.IrType{ir.Ptr()}, Return: ir.Void()},
	}
}

func timerSpecs() []ExternSpec {
	return []ExternSpec{
		{Name: "zaco_set_timeout", Params: []ir.IrType{ir.Ptr(), ir.Ptr(), ir.I64()}, Return: ir.I64()},
		{Name: "zaco_set_interval", Params: []ir.IrType{ir.Ptr(), ir.Ptr(), ir.I64()}, Return: ir.I64()},
		{Name: "zaco_clear_timeout", Params: []ir.IrType{ir.I64()}, Return: ir.Void()},
		{Name: "zaco_clear_interval", Params: []ir.IrType{ir.I64()}, Return: ir.Void()},
	}
}

func promiseSpecs() []ExternSpec {
	return []ExternSpec{
		{Name: "zaco_promise_new", Params: nil, Return: ir.Ptr()},
		{Name: "zaco_promise_resolve", Params: []ir.IrType{ir.Ptr(), ir.Ptr()}, Return: ir.Void()},
		{Name: "zaco_promise_reject", Params: []ir.IrType{ir.Ptr(), ir.Ptr()}, Return: ir.Void()},
		{Name: "zaco_async_block_on", Params: []ir.IrType{ir.Ptr()}, Return: ir.Ptr()},
		{Name: "zaco_async_spawn", Params: []ir.IrType{ir.Ptr(), ir.Ptr()}, Return: ir.Ptr()},
		{Name: "zaco_promise_free", Params: []ir.IrType{ir.Ptr()}, Return: ir.Void()},
		{Name: "zaco_promise_await", Params: []ir.IrType{ir.Ptr()}, Return: ir.Ptr()},
	}
}

func lifecycleSpecs() []ExternSpec {
	return []ExternSpec{
		{Name: "zaco_runtime_init", Params: nil, Return: ir.Void()},
		{Name: "zaco_runtime_shutdown", Params: nil, Return: ir.Void()},
	}
}

// lowererHelperSpecs are not part of the fixed host-runtime ABI surface
// described to end users, but are synthesised by internal/lower for
// control-flow constructs the MIR has no dedicated instruction for
// (iteration protocol, nullish/undefined tests, thrown values). They are
// listed here alongside the host-runtime specs so ByName finds them too.
func lowererHelperSpecs() []ExternSpec {
	return []ExternSpec{
		{Name: "zaco_iter_new", Params: []ir.IrType{ir.Ptr()}, Return: ir.Ptr()},
		{Name: "zaco_iter_done", Params: []ir.IrType{ir.Ptr()}, Return: ir.Bool()},
		{Name: "zaco_iter_next", Params: []ir.IrType{ir.Ptr()}, Return: ir.Ptr()},
		{Name: "zaco_keys_iter_new", Params: []ir.IrType{ir.Ptr()}, Return: ir.Ptr()},
		{Name: "zaco_is_nullish", Params: []ir.IrType{ir.Ptr()}, Return: ir.Bool()},
		{Name: "zaco_is_undefined", Params: []ir.IrType{ir.Ptr()}, Return: ir.Bool()},
		{Name: "zaco_throw", Params: []ir.IrType{ir.Ptr()}, Return: ir.Void()},
		{Name: "zaco_object_new", Params: nil, Return: ir.Ptr()},
		{Name: "zaco_object_set", Params: []ir.IrType{ir.Ptr(), ir.Str(), ir.Ptr()}, Return: ir.Void()},
		{Name: "zaco_console_log_i64", Params: []ir.IrType{ir.I64()}, Return: ir.Void()},
		{Name: "zaco_console_log_f64", Params: []ir.IrType{ir.F64()}, Return: ir.Void()},
		{Name: "zaco_console_log_bool", Params: []ir.IrType{ir.Bool()}, Return: ir.Void()},
		{Name: "zaco_console_log_str", Params: []ir.IrType{ir.Str()}, Return: ir.Void()},
		{Name: "zaco_console_log_ptr", Params: []ir.IrType{ir.Ptr()}, Return: ir.Void()},
		{Name: "zaco_console_error_i64", Params: []ir.IrType{ir.I64()}, Return: ir.Void()},
		{Name: "zaco_console_error_f64", Params: []ir.IrType{ir.F64()}, Return: ir.Void()},
		{Name: "zaco_console_error_bool", Params: []ir.IrType{ir.Bool()}, Return: ir.Void()},
		{Name: "zaco_console_error_str", Params: []ir.IrType{ir.Str()}, Return: ir.Void()},
		{Name: "zaco_console_error_ptr", Params: []ir.IrType{ir.Ptr()}, Return: ir.Void()},
		{Name: "zaco_console_warn_i64", Params: []ir.IrType{ir.I64()}, Return: ir.Void()},
		{Name: "zaco_console_warn_f64", Params: []ir.IrType{ir.F64()}, Return: ir.Void()},
		{Name: "zaco_console_warn_bool", Params: []ir.IrType{ir.Bool()}, Return: ir.Void()},
		{Name: "zaco_console_warn_str", Params: []ir.IrType{ir.Str()}, Return: ir.Void()},
		{Name: "zaco_console_warn_ptr", Params: []ir.IrType{ir.Ptr()}, Return: ir.Void()},
		{Name: "zaco_console_info_i64", Params: []ir.IrType{ir.I64()}, Return: ir.Void()},
		{Name: "zaco_console_info_f64", Params: []ir.IrType{ir.F64()}, Return: ir.Void()},
		{Name: "zaco_console_info_bool", Params: []ir.IrType{ir.Bool()}, Return: ir.Void()},
		{Name: "zaco_console_info_str", Params: []ir.IrType{ir.Str()}, Return: ir.Void()},
		{Name: "zaco_console_info_ptr", Params: []ir.IrType{ir.Ptr()}, Return: ir.Void()},
	}
}

// ByName indexes AllSpecs by function name for O(1) lookup.
func ByName() map[string]ExternSpec {
	out := make(map[string]ExternSpec)
	for _, s := range AllSpecs() {
		out[s.Name] = s
	}
	return out
}
