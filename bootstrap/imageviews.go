package bootstrap

import (
	"github.com/vkngwrapper/bootstrap/driver"
)

// ColorViewInfo describes a 2D color view of image with identity swizzle,
// one mip level and one array layer.
func ColorViewInfo(image driver.Image, format driver.Format) driver.ImageViewCreateInfo {
	return driver.ImageViewCreateInfo{
		Image:    image,
		ViewType: driver.ImageViewType2D,
		Format:   format,
		Components: driver.ComponentMapping{
			R: driver.SwizzleIdentity,
			G: driver.SwizzleIdentity,
			B: driver.SwizzleIdentity,
			A: driver.SwizzleIdentity,
		},
		SubresourceRange: driver.ImageSubresourceRange{
			AspectMask:     driver.ImageAspectColor,
			BaseMipLevel:   0,
			LevelCount:     1,
			BaseArrayLayer: 0,
			LayerCount:     1,
		},
	}
}

// CreateImageViews creates one color view per image, in image order. When
// a creation fails it returns the views created so far together with an
// error marked ErrImageViewCreationFailed; the caller owns those views.
func CreateImageViews(device driver.Device, images []driver.Image, format driver.Format) ([]driver.ImageView, error) {
	views := make([]driver.ImageView, 0, len(images))
	for idx, image := range images {
		info := ColorViewInfo(image, format)
		if err := info.Validate(); err != nil {
			return views, fail(err, ErrImageViewCreationFailed, "create image view %d", idx)
		}

		view, err := device.CreateImageView(info)
		if err != nil {
			return views, fail(err, ErrImageViewCreationFailed, "create image view %d", idx)
		}
		views = append(views, view)
	}
	return views, nil
}

// DestroyImageViews destroys views in reverse creation order.
func DestroyImageViews(views []driver.ImageView) {
	for i := len(views) - 1; i >= 0; i-- {
		views[i].Destroy()
	}
}
