package driver

// Well-known layer and extension names.
const (
	KhronosValidationLayerName = "VK_LAYER_KHRONOS_validation"

	SurfaceExtensionName                = "VK_KHR_surface"
	SwapchainExtensionName              = "VK_KHR_swapchain"
	DebugUtilsExtensionName             = "VK_EXT_debug_utils"
	PortabilityEnumerationExtensionName = "VK_KHR_portability_enumeration"
	PortabilitySubsetExtensionName      = "VK_KHR_portability_subset"
)
